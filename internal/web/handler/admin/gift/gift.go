// Package gift provides handlers for managing the gift catalog (CRUD) and
// confirming payments in the admin area.
package gift

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
)

const (
	// Path is the base path for gift management.
	Path = handler.AdminPath + "/gifts"

	// TemplateList is the template for listing gifts and adding one.
	TemplateList = "admin/gift/list"
	// TemplateForm is the template for editing a gift.
	TemplateForm = "admin/gift/form"
)

var (
	// ErrAlreadyConfirmed is returned when confirming a confirmed gift again.
	ErrAlreadyConfirmed = errors.New("gift already confirmed")

	// ErrGiftNotFound is returned for an unknown gift.
	ErrGiftNotFound = errors.New("gift not found")
)

var messages = handler.Messages{
	ErrAlreadyConfirmed: "Este presente já está confirmado.",
	ErrGiftNotFound:     "Presente não encontrado.",
}

// Form is the gift form. Name and price are required, as in the catalog
// every gift needs both.
type Form struct {
	Name        string  `form:"name" validate:"required,max=120"`
	Description string  `form:"description" validate:"max=1000"`
	Price       float64 `form:"price" validate:"gt=0"`
	ImageURL    string  `form:"imageUrl" validate:"omitempty,url"`
}

// NewForm is the empty form of a new gift.
func NewForm() Form {
	return Form{ImageURL: seed.DefaultGiftImage}
}

func (f Form) image() string {
	if strings.TrimSpace(f.ImageURL) == "" {
		return seed.DefaultGiftImage
	}

	return f.ImageURL
}

// Gift returns the new gift of the form.
func (f Form) Gift() model.Gift {
	return model.Gift{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.image(),
	}
}

// Patch returns the update of an existing gift. Status, counter and buyer
// are left alone.
func (f Form) Patch() model.GiftPatch {
	return model.GiftPatch{
		Name:        model.Ptr(f.Name),
		Description: model.Ptr(f.Description),
		Price:       model.Ptr(f.Price),
		ImageURL:    model.Ptr(f.image()),
	}
}

// Service provides CRUD operations for gifts.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     *state.Store
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.cfg = cfg
	s.store = deps.Store
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Get(Path+"/:id/edit", s.Edit)
	app.Post(Path+"/:id", s.Update)
	app.Post(Path+"/:id/delete", s.Delete)
	app.Post(Path+"/:id/confirm", s.Confirm)

	return nil
}

func (s *Service) list(c *fiber.Ctx, form Form, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Presentes", "gifts")
	data["Gifts"] = s.store.Gifts()
	data["Form"] = form

	return c.Render(TemplateList, data, handler.AdminLayout)
}

func (s *Service) form(c *fiber.Ctx, g model.Gift, form Form, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Presentes", "gifts").
		AddBreadcrumb(g.Name, Path+"/"+g.ID+"/edit", true)
	data["Gift"] = g
	data["Form"] = form

	return c.Render(TemplateForm, data, handler.AdminLayout)
}

// List shows the catalog and the new gift form.
func (s *Service) List(c *fiber.Ctx) error {
	return s.list(c, NewForm(), fiber.Map{})
}

// Create adds a gift. New gifts always start available with no purchases.
func (s *Service) Create(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse gift form")
		return s.list(c.Status(fiber.StatusBadRequest), *form, fiber.Map{"Error": "Invalid form data"})
	}

	if err := s.validator.Struct(form); err != nil {
		return s.list(c.Status(fiber.StatusBadRequest), *form, fiber.Map{
			"Error": handler.ValidationMessages(err),
		})
	}

	g, err := s.store.AddGift(c.UserContext(), form.Gift())
	if err != nil {
		log.Error().Err(err).Msg("failed to add gift")
		return s.list(c.Status(fiber.StatusInternalServerError), *form, fiber.Map{
			"Error": "Falha ao salvar o presente: " + err.Error(),
		})
	}

	log.Info().Str("gift", g.ID).Str("name", g.Name).Msg("gift added")

	return c.Redirect(Path)
}

// Edit shows the form of one gift.
func (s *Service) Edit(c *fiber.Ctx) error {
	g, ok := s.store.Gift(c.Params("id"))
	if !ok {
		return c.Redirect(Path)
	}

	return s.form(c, g, Form{
		Name:        g.Name,
		Description: g.Description,
		Price:       g.Price,
		ImageURL:    g.ImageURL,
	}, fiber.Map{})
}

// Update saves the form of one gift.
func (s *Service) Update(c *fiber.Ctx) error {
	g, ok := s.store.Gift(c.Params("id"))
	if !ok {
		return c.Redirect(Path)
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return s.form(c.Status(fiber.StatusBadRequest), g, *form, fiber.Map{"Error": "Invalid form data"})
	}

	if err := s.validator.Struct(form); err != nil {
		return s.form(c.Status(fiber.StatusBadRequest), g, *form, fiber.Map{
			"Error": handler.ValidationMessages(err),
		})
	}

	if err := s.store.UpdateGift(c.UserContext(), g.ID, form.Patch()); err != nil {
		log.Error().Err(err).Str("gift", g.ID).Msg("failed to update gift")
		return s.form(c.Status(fiber.StatusInternalServerError), g, *form, fiber.Map{
			"Error": "Falha ao salvar o presente: " + err.Error(),
		})
	}

	return c.Redirect(Path)
}

// Delete removes a gift.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.store.RemoveGift(c.UserContext(), id); err != nil {
		log.Error().Err(err).Str("gift", id).Msg("failed to remove gift")
		return s.list(c.Status(fiber.StatusInternalServerError), NewForm(), fiber.Map{
			"Error": "Falha ao excluir o presente: " + err.Error(),
		})
	}

	log.Info().Str("gift", id).Msg("gift removed")

	return c.Redirect(Path)
}

// Confirm records a received payment. A gift that is already confirmed is
// refused so a double click does not count the payment twice.
func (s *Service) Confirm(c *fiber.Ctx) error {
	id := c.Params("id")

	g, ok := s.store.Gift(id)
	if !ok {
		return s.list(c.Status(fiber.StatusNotFound), NewForm(), fiber.Map{"Error": handler.Message(ErrGiftNotFound, messages)})
	}

	if g.Status == model.GiftConfirmed {
		return s.list(c.Status(fiber.StatusConflict), NewForm(), fiber.Map{"Error": handler.Message(ErrAlreadyConfirmed, messages)})
	}

	if err := s.store.ConfirmGiftPayment(c.UserContext(), id); err != nil {
		if errors.Is(err, state.ErrGiftNotFound) {
			return s.list(c.Status(fiber.StatusNotFound), NewForm(), fiber.Map{"Error": handler.Message(ErrGiftNotFound, messages)})
		}

		log.Error().Err(err).Str("gift", id).Msg("failed to confirm payment")

		return s.list(c.Status(fiber.StatusInternalServerError), NewForm(), fiber.Map{
			"Error": "Falha ao confirmar o pagamento: " + err.Error(),
		})
	}

	log.Info().Str("gift", id).Str("buyer", g.BuyerName).Msg("gift payment confirmed")

	return c.Redirect(Path)
}
