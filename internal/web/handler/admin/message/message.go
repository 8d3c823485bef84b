// Package message lets organizers review and delete guest recordings.
package message

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/messages"
)

const (
	// Path is the base path for message management.
	Path = handler.AdminPath + "/messages"

	// TemplateList is the template for listing messages.
	TemplateList = "admin/message/list"
)

// Service is the message management handler service.
type Service struct {
	handler.Service
	store *state.Store
}

// Handler is the message management handler.
var Handler = Service{}

// Init initializes the message management handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.store = deps.Store

	app.Get(Path, s.List)
	app.Post(Path+"/:id/delete", s.Delete)

	return nil
}

func (s *Service) list(c *fiber.Ctx, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Recados", "messages")
	data["Messages"] = s.store.Messages()
	data["Gifts"] = messages.GiftNames(s.store.Gifts())
	data["Public"] = s.store.Settings().ShowMessagesToPublic

	return c.Render(TemplateList, data, handler.AdminLayout)
}

// List shows every recording, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	return s.list(c, fiber.Map{})
}

// Delete removes a recording. The uploaded file stays with the media host.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.store.DeleteMessage(c.UserContext(), id); err != nil {
		log.Error().Err(err).Str("message", id).Msg("failed to delete message")
		return s.list(c.Status(fiber.StatusInternalServerError), fiber.Map{
			"Error": "Falha ao excluir o recado: " + err.Error(),
		})
	}

	log.Info().Str("message", id).Msg("message deleted")

	return c.Redirect(Path)
}
