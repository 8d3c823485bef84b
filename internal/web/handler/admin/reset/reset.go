// Package reset puts the site back to its starting content.
package reset

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/login"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/session"
)

const (
	// Path is the reset page.
	Path = handler.AdminPath + "/reset"

	// Template asks for confirmation.
	Template = "admin/reset"

	confirmValue = "yes"
)

// ErrNotConfirmed is returned when the form was sent without confirmation.
var ErrNotConfirmed = errors.New("reset not confirmed")

var messages = handler.Messages{
	ErrNotConfirmed: "Confirme que deseja apagar todos os dados.",
}

type form struct {
	Confirm string `form:"confirm"`
}

// Service is the reset handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store *state.Store
}

// Handler is the reset handler.
var Handler = Service{}

// Init initializes the reset handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.cfg = cfg
	s.store = deps.Store

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)

	return nil
}

func (s *Service) render(c *fiber.Ctx, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Resetar", "reset")
	return c.Render(Template, data, handler.AdminLayout)
}

// Get asks for confirmation.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.Map{})
}

// Post wipes the site and every organizer session. The organizer lands on
// the login page since the password went back to its default too.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(form)
	if err := c.BodyParser(in); err != nil || in.Confirm != confirmValue {
		return s.render(c.Status(fiber.StatusBadRequest), fiber.Map{"Error": handler.Message(ErrNotConfirmed, messages)})
	}

	if err := s.store.ResetStore(c.UserContext()); err != nil {
		log.Error().Err(err).Msg("failed to reset site")
		return s.render(c.Status(fiber.StatusInternalServerError), fiber.Map{
			"Error": "Falha ao resetar: " + err.Error(),
		})
	}

	if err := session.Reset(); err != nil {
		log.Error().Err(err).Msg("failed to drop sessions after reset")
	}

	c.ClearCookie(session.CookieName)

	return c.Redirect(login.Path)
}
