// Package page provides the page management of the admin area: visibility,
// home cover editor, deletion and generated pages.
package page

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/generate"
	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
)

const (
	// Path is the base path for page management.
	Path = handler.AdminPath + "/pages"

	// HeroPath is the home cover editor.
	HeroPath = Path + "/home"

	// GeneratePath creates a page from a topic.
	GeneratePath = Path + "/generate"

	// TemplateList is the template for listing pages.
	TemplateList = "admin/page/list"
	// TemplateHero is the template of the cover editor.
	TemplateHero = "admin/page/hero"

	// HeroSaved is shown after the cover was saved.
	HeroSaved = "Capa do site atualizada com sucesso!"
	// Generated is shown after a page was generated.
	Generated = "Página gerada com sucesso!"
)

// Hero editor actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionSave   = "save"
)

var (
	// ErrSystemPage is returned when deleting a built-in page.
	ErrSystemPage = errors.New("system pages cannot be deleted")

	// ErrNoHero is returned when the home page has no cover section.
	ErrNoHero = errors.New("home page has no cover section")

	// ErrGeneratorDisabled is returned when no generator is configured.
	ErrGeneratorDisabled = errors.New("page generator disabled")
)

var messages = handler.Messages{
	ErrSystemPage:        "Páginas do sistema não podem ser excluídas.",
	ErrNoHero:            "A página inicial não tem uma capa.",
	ErrGeneratorDisabled: "A geração de páginas não está disponível.",
}

// HeroForm is the home cover editor.
type HeroForm struct {
	SectionID   string   `form:"sectionId"`
	Title       string   `form:"title" validate:"max=200"`
	Content     string   `form:"content" validate:"max=500"`
	ImageURLs   []string `form:"imageUrls" validate:"dive,url"`
	NewImageURL string   `form:"newImageUrl" validate:"omitempty,url"`
	Action      string   `form:"action"`
}

// RemoveAction is the action value removing the image at index i.
func RemoveAction(i int) string {
	return ActionRemove + ":" + strconv.Itoa(i)
}

// HeroFormFrom fills the editor from a hero section. A section saved before
// image lists existed shows its single picture as the list.
func HeroFormFrom(s model.Section) HeroForm {
	return HeroForm{
		SectionID: s.ID,
		Title:     s.Title,
		Content:   s.Content,
		ImageURLs: slices.Clone(s.Images()),
	}
}

// Apply runs an add or remove action on the image list.
func (f *HeroForm) Apply() {
	action, arg, _ := strings.Cut(f.Action, ":")

	switch action {
	case ActionAdd:
		if u := strings.TrimSpace(f.NewImageURL); u != "" {
			f.ImageURLs = append(f.ImageURLs, u)
		}

		f.NewImageURL = ""
	case ActionRemove:
		i, err := strconv.Atoi(arg)
		if err == nil && i >= 0 && i < len(f.ImageURLs) {
			f.ImageURLs = slices.Delete(f.ImageURLs, i, i+1)
		}
	}
}

// Section merges the editor into the stored section. The single picture is
// kept as the first image of the list, for readers of the old field.
func (f HeroForm) Section(s model.Section) model.Section {
	s.Title = f.Title
	s.Content = f.Content
	s.ImageURLs = slices.Clone(f.ImageURLs)
	s.ImageURL = ""

	if len(s.ImageURLs) > 0 {
		s.ImageURL = s.ImageURLs[0]
	}

	return s
}

type generateForm struct {
	Topic string `form:"topic" validate:"required,max=300"`
}

// Service manages pages.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     *state.Store
	generator generate.Generator
	validator *validator.Validate
	now       func() time.Time
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
	s.generator = deps.Generator
	s.validator = validator.New()
	s.now = time.Now

	app.Get(Path, s.List)
	app.Get(HeroPath, s.Hero)
	app.Post(HeroPath, s.SaveHero)
	app.Post(GeneratePath, s.Generate)
	app.Post(Path+"/:id/visibility", s.ToggleVisibility)
	app.Post(Path+"/:id/delete", s.Delete)

	return nil
}

func (s *Service) list(c *fiber.Ctx, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Páginas", "pages")
	data["Pages"] = s.store.Pages()
	data["GeneratorEnabled"] = s.generator != nil

	return c.Render(TemplateList, data, handler.AdminLayout)
}

// List shows every page with its visibility.
func (s *Service) List(c *fiber.Ctx) error {
	return s.list(c, fiber.Map{})
}

// ToggleVisibility shows or hides a page in the menu.
func (s *Service) ToggleVisibility(c *fiber.Ctx) error {
	p, ok := s.store.Page(c.Params("id"))
	if !ok {
		return c.Redirect(Path)
	}

	err := s.store.UpdatePage(c.UserContext(), p.ID, model.PagePatch{IsVisible: model.Ptr(!p.IsVisible)})
	if err != nil {
		log.Error().Err(err).Str("page", p.ID).Msg("failed to toggle page visibility")
		return s.list(c.Status(fiber.StatusInternalServerError), fiber.Map{
			"Error": "Falha ao atualizar a página: " + err.Error(),
		})
	}

	return c.Redirect(Path)
}

// Delete removes an authored page. System pages are refused.
func (s *Service) Delete(c *fiber.Ctx) error {
	p, ok := s.store.Page(c.Params("id"))
	if !ok {
		return c.Redirect(Path)
	}

	if p.IsSystem || seed.IsSystemSlug(p.Slug) {
		return s.list(c.Status(fiber.StatusForbidden), fiber.Map{"Error": handler.Message(ErrSystemPage, messages)})
	}

	if err := s.store.RemovePage(c.UserContext(), p.ID); err != nil {
		log.Error().Err(err).Str("page", p.ID).Msg("failed to remove page")
		return s.list(c.Status(fiber.StatusInternalServerError), fiber.Map{
			"Error": "Falha ao excluir a página: " + err.Error(),
		})
	}

	log.Info().Str("page", p.ID).Str("slug", p.Slug).Msg("page removed")

	return c.Redirect(Path)
}

func (s *Service) hero() (model.Page, int, error) {
	home, ok := s.store.Page(seed.HomePageID)
	if !ok {
		return model.Page{}, -1, ErrNoHero
	}

	i := slices.IndexFunc(home.Sections, func(sec model.Section) bool { return sec.Type == model.SectionHero })
	if i < 0 {
		return model.Page{}, -1, ErrNoHero
	}

	return home, i, nil
}

func (s *Service) heroForm(c *fiber.Ctx, form HeroForm, data fiber.Map) error {
	data["Navigation"] = handler.AdminNav(c, s.store, "Páginas", "pages").
		AddBreadcrumb("Capa", HeroPath, true)
	data["Form"] = form

	return c.Render(TemplateHero, data, handler.AdminLayout)
}

// Hero shows the cover editor.
func (s *Service) Hero(c *fiber.Ctx) error {
	home, i, err := s.hero()
	if err != nil {
		return s.heroForm(c.Status(fiber.StatusNotFound), HeroForm{}, fiber.Map{"Error": handler.Message(err, messages)})
	}

	return s.heroForm(c, HeroFormFrom(home.Sections[i]), fiber.Map{})
}

// SaveHero handles the cover editor. Adding or removing an image only
// redraws the form; the list is stored on save.
func (s *Service) SaveHero(c *fiber.Ctx) error {
	home, i, err := s.hero()
	if err != nil {
		return s.heroForm(c.Status(fiber.StatusNotFound), HeroForm{}, fiber.Map{"Error": handler.Message(err, messages)})
	}

	form := new(HeroForm)
	if err = c.BodyParser(form); err != nil {
		return s.heroForm(c.Status(fiber.StatusBadRequest), HeroFormFrom(home.Sections[i]), fiber.Map{
			"Error": "Invalid form data",
		})
	}

	if err = s.validator.Struct(form); err != nil {
		return s.heroForm(c.Status(fiber.StatusBadRequest), *form, fiber.Map{
			"Error": handler.ValidationMessages(err),
		})
	}

	if form.Action != "" && form.Action != ActionSave {
		form.Apply()
		return s.heroForm(c, *form, fiber.Map{})
	}

	sections := slices.Clone(home.Sections)
	sections[i] = form.Section(sections[i])

	if err = s.store.UpdatePage(c.UserContext(), home.ID, model.PagePatch{Sections: &sections}); err != nil {
		log.Error().Err(err).Msg("failed to save home cover")
		return s.heroForm(c.Status(fiber.StatusInternalServerError), *form, fiber.Map{
			"Error": "Falha ao salvar a capa: " + err.Error(),
		})
	}

	log.Info().Int("images", len(form.ImageURLs)).Msg("home cover saved")

	return s.heroForm(c, *form, fiber.Map{"Success": HeroSaved})
}

// Generate asks the generator for a page about the submitted topic and
// stores it visible under a free slug.
func (s *Service) Generate(c *fiber.Ctx) error {
	if s.generator == nil {
		return s.list(c.Status(fiber.StatusServiceUnavailable), fiber.Map{"Error": handler.Message(ErrGeneratorDisabled, messages)})
	}

	form := new(generateForm)
	if err := c.BodyParser(form); err != nil {
		return s.list(c.Status(fiber.StatusBadRequest), fiber.Map{"Error": "Invalid form data"})
	}

	if err := s.validator.Struct(form); err != nil {
		return s.list(c.Status(fiber.StatusBadRequest), fiber.Map{"Error": handler.ValidationMessages(err)})
	}

	pages := s.store.Pages()

	draft, err := s.generator.Generate(c.UserContext(), generate.Request{
		Topic:    form.Topic,
		Existing: pages,
		APIKey:   s.store.Settings().GeminiAPIKey,
	})
	if err != nil {
		metrics.PagesGenerated.WithLabelValues(metrics.ResultError).Inc()

		status := fiber.StatusBadGateway
		msg := "Falha ao gerar página: " + handler.Message(err, messages)

		if errors.Is(err, generate.ErrMissingAPIKey) {
			status, msg = fiber.StatusBadRequest, handler.Message(err, messages)
		}

		return s.list(c.Status(status), fiber.Map{"Error": msg, "Topic": form.Topic})
	}

	p, err := s.store.AddPage(c.UserContext(), generate.Prepare(draft, pages, s.now()))
	if err != nil {
		metrics.PagesGenerated.WithLabelValues(metrics.ResultError).Inc()
		log.Error().Err(err).Msg("failed to store generated page")

		return s.list(c.Status(fiber.StatusInternalServerError), fiber.Map{
			"Error": "Falha ao salvar a página: " + err.Error(),
			"Topic": form.Topic,
		})
	}

	metrics.PagesGenerated.WithLabelValues(metrics.ResultOK).Inc()
	log.Info().Str("page", p.ID).Str("slug", p.Slug).Str("topic", form.Topic).Msg("page generated")

	return s.list(c, fiber.Map{"Success": Generated, "Created": p})
}
