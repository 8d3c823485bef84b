// Package transparency serves the public gift statistics.
package transparency

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/render"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/navigation"
)

const (
	// Path is the dashboard page.
	Path = model.SlugTransparency

	template = "transparency"
)

// Service is the transparency handler service.
type Service struct {
	handler.Service
	store *state.Store
}

// Handler is the transparency handler.
var Handler = Service{}

// Init initializes the transparency handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.store = deps.Store

	app.Get(Path, s.Get)

	return nil
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(template, fiber.Map{
		"Navigation": handler.Nav(c, s.store, "Transparência", navigation.SectionPublic, "transparency"),
		"Summary":    render.Summarize(s.store.Gifts()),
	}, handler.BaseLayout)
}
