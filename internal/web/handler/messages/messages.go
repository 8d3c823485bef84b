// Package messages serves the public message board.
package messages

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/render"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/page"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/navigation"
)

const (
	// Path is the message board.
	Path = model.SlugMessages

	template = "messages"
)

// Service is the message board handler service.
type Service struct {
	handler.Service
	store *state.Store
}

// Handler is the message board handler.
var Handler = Service{}

// Init initializes the message board handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.store = deps.Store

	app.Get(Path, s.Get)

	return nil
}

// Get renders the board, newest recording first. While the board is private
// only organizers see it; everybody else gets the not found page.
func (s *Service) Get(c *fiber.Ctx) error {
	if !render.MessagesVisible(s.store.Settings(), handler.IsAuthenticated(c)) {
		return page.NotFound(c, s.store)
	}

	data := fiber.Map{
		"Navigation": handler.Nav(c, s.store, "Mural de Recados", navigation.SectionPublic, "messages"),
		"Messages":   s.store.Messages(),
		"Gifts":      GiftNames(s.store.Gifts()),
	}

	if p, ok := s.store.PageBySlug(Path); ok {
		data["Page"] = render.View(p)
	}

	return c.Render(template, data, handler.BaseLayout)
}

// GiftNames maps gift identities to names, for captions of recordings.
func GiftNames(gifts []model.Gift) map[string]string {
	out := make(map[string]string, len(gifts))
	for _, g := range gifts {
		out[g.ID] = g.Name
	}

	return out
}
