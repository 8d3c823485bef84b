package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/navigation"
)

// ErrNilDeps is returned by Init when a required component is missing.
var ErrNilDeps = errors.New(ErrNilACDFatalLogMsg)

// Check validates the arguments every Init receives.
func Check(app *fiber.App, cfg *config.Config, deps Deps) error {
	if app == nil || cfg == nil || deps.Store == nil {
		return ErrNilDeps
	}

	return nil
}

// IsAuthenticated reports whether the request carries an organizer session.
func IsAuthenticated(c *fiber.Ctx) bool {
	ok, _ := c.Locals(LocalAuthenticated).(bool)
	return ok
}

// Nav builds the navigation context of the current request.
func Nav(c *fiber.Ctx, store *state.Store, title, section, page string) *navigation.Context {
	return navigation.NewContext(title, section, page).
		WithSite(store.Settings(), store.Pages(), IsAuthenticated(c), store.Warning())
}

// AdminNav builds the navigation context of an admin panel page.
func AdminNav(c *fiber.Ctx, store *state.Store, title, page string) *navigation.Context {
	return Nav(c, store, title, navigation.SectionAdmin, page).
		AddBreadcrumb("Painel", AdminPath, false).
		AddBreadcrumb(title, AdminPath+"/"+page, true)
}

// ValidationMessages turns a validator error into one line per field.
func ValidationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	errorMessages := make([]string, len(validationErrors))
	for i, ve := range validationErrors {
		errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
	}

	return errorMessages
}

