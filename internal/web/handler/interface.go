package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/generate"
	"github.com/GoWeddingSite/GoWeddingSite/internal/purchase"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
)

// Deps are the components handlers work with.
type Deps struct {
	Store     *state.Store
	Purchase  *purchase.Flow
	Generator generate.Generator
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps Deps) error
}
