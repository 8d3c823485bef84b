// Package page serves the home page and every authored page by slug.
package page

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/render"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/navigation"
)

const (
	template         = "page"
	notFoundTemplate = "notfound"
)

// ErrNotFound is returned for an unknown slug.
var ErrNotFound = errors.New("page not found")

var messages = handler.Messages{
	ErrNotFound: "Página não encontrada",
}

// Service is the page handler service.
type Service struct {
	handler.Service
	store *state.Store
}

// Handler is the page handler.
var Handler = Service{}

// Init registers the catch-all route. It must be the last handler
// initialised so the fixed routes win.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.store = deps.Store

	app.Get(handler.RootPath, s.Get)
	app.Get(handler.RootPath+"*", s.Get)

	return nil
}

// Slug returns the page slug of the request path.
func Slug(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	if path == "" {
		return model.SlugHome
	}

	return path
}

// Get renders the page routed at the request path. Hidden pages stay
// reachable by their address, they are only left out of the menu.
func (s *Service) Get(c *fiber.Ctx) error {
	slug := Slug(c.Path())

	page, err := render.Resolve(s.store.Pages(), slug)
	if err != nil {
		return NotFound(c, s.store)
	}

	return c.Render(template, fiber.Map{
		"Navigation": handler.Nav(c, s.store, page.Title, navigation.SectionPublic, page.Slug),
		"Page":       render.View(page),
	}, handler.BaseLayout)
}

// NotFound renders the not found page.
func NotFound(c *fiber.Ctx, store *state.Store) error {
	return c.Status(fiber.StatusNotFound).Render(notFoundTemplate, fiber.Map{
		"Navigation": handler.Nav(c, store, handler.Message(ErrNotFound, messages), navigation.SectionPublic, ""),
		"Error":      handler.Message(ErrNotFound, messages),
	}, handler.BaseLayout)
}
