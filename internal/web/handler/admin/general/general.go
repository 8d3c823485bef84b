// Package general provides the general settings form of the admin panel.
package general

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
)

const (
	// Path is the settings form.
	Path = handler.AdminPath + "/settings"

	// WarningPath dismisses the store warning.
	WarningPath = handler.AdminPath + "/warning/dismiss"

	// Template is the settings form template.
	Template = "admin/settings"

	// Saved is shown after a successful save.
	Saved = "Configurações salvas!"
)

// Form is the settings form. Every field is written on save.
type Form struct {
	CoupleName           string `form:"coupleName" validate:"required,max=120"`
	WeddingDate          string `form:"weddingDate" validate:"max=60"`
	WeddingLocation      string `form:"weddingLocation" validate:"max=200"`
	AdminPassword        string `form:"adminPassword" validate:"required,max=120"`
	PixKey               string `form:"pixKey" validate:"max=140"`
	PixKeyType           string `form:"pixKeyType" validate:"required,oneof=CPF CNPJ Email Phone Random"`
	PaymentURL           string `form:"paymentUrl" validate:"omitempty,url"`
	PrimaryColor         string `form:"primaryColor" validate:"required,hexcolor"`
	LoadingTitle         string `form:"loadingTitle" validate:"max=120"`
	LoadingSubtitle      string `form:"loadingSubtitle" validate:"max=200"`
	ShowMessagesToPublic bool   `form:"showMessagesToPublic"`
	GeminiAPIKey         string `form:"geminiApiKey" validate:"max=200"`
}

// FormFrom fills the form with the current settings.
func FormFrom(s model.Settings) Form {
	return Form{
		CoupleName:           s.CoupleName,
		WeddingDate:          s.WeddingDate,
		WeddingLocation:      s.WeddingLocation,
		AdminPassword:        s.AdminPassword,
		PixKey:               s.PixKey,
		PixKeyType:           string(s.PixKeyType),
		PaymentURL:           s.PaymentURL,
		PrimaryColor:         s.PrimaryColor,
		LoadingTitle:         s.LoadingTitle,
		LoadingSubtitle:      s.LoadingSubtitle,
		ShowMessagesToPublic: s.ShowMessagesToPublic,
		GeminiAPIKey:         s.GeminiAPIKey,
	}
}

// Patch returns the settings update of the form.
func (f Form) Patch() model.SettingsPatch {
	return model.SettingsPatch{
		CoupleName:           model.Ptr(f.CoupleName),
		WeddingDate:          model.Ptr(f.WeddingDate),
		WeddingLocation:      model.Ptr(f.WeddingLocation),
		AdminPassword:        model.Ptr(f.AdminPassword),
		PixKey:               model.Ptr(f.PixKey),
		PixKeyType:           model.Ptr(model.PixKeyType(f.PixKeyType)),
		PaymentURL:           model.Ptr(f.PaymentURL),
		PrimaryColor:         model.Ptr(f.PrimaryColor),
		LoadingTitle:         model.Ptr(f.LoadingTitle),
		LoadingSubtitle:      model.Ptr(f.LoadingSubtitle),
		ShowMessagesToPublic: model.Ptr(f.ShowMessagesToPublic),
		GeminiAPIKey:         model.Ptr(f.GeminiAPIKey),
	}
}

// Service is the general settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     *state.Store
	validator *validator.Validate
}

// Handler is the general settings handler.
var Handler = Service{}

// Init initializes the general settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.cfg = cfg
	s.store = deps.Store
	s.validator = validator.New()

	app.Get(handler.AdminPath, func(c *fiber.Ctx) error {
		return c.Redirect(Path)
	})
	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
	app.Post(WarningPath, s.DismissWarning)

	return nil
}

func (s *Service) render(c *fiber.Ctx, form Form, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Geral", "settings")
	data["Form"] = form
	data["PixKeyTypes"] = model.PixKeyTypes

	return c.Render(Template, data, handler.AdminLayout)
}

// Get renders the settings form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, FormFrom(s.store.Settings()), fiber.Map{})
}

// Post saves the settings form.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse settings form")
		return s.render(c.Status(fiber.StatusBadRequest), *form, fiber.Map{"Error": "Invalid form data"})
	}

	if err := s.validator.Struct(form); err != nil {
		log.Debug().Err(err).Msg("validation failed for settings")
		return s.render(c.Status(fiber.StatusBadRequest), *form, fiber.Map{
			"Error": handler.ValidationMessages(err),
		})
	}

	if err := s.store.UpdateSettings(c.UserContext(), form.Patch()); err != nil {
		log.Error().Err(err).Msg("failed to save settings")
		return s.render(c.Status(fiber.StatusInternalServerError), *form, fiber.Map{
			"Error": "Falha ao salvar as configurações: " + err.Error(),
		})
	}

	log.Info().Str("couple", form.CoupleName).Msg("settings saved")

	return s.render(c, *form, fiber.Map{"Success": Saved})
}

// DismissWarning clears the "saved only in memory" banner.
func (s *Service) DismissWarning(c *fiber.Ctx) error {
	s.store.ClearWarning()
	return c.RedirectBack(handler.AdminPath)
}
