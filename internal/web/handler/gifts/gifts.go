// Package gifts serves the public gift registry and its purchase form.
package gifts

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/media"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/purchase"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/navigation"
)

const (
	// Path is the registry page.
	Path = model.SlugGifts

	// CaptureErrorPath receives recorder failures from the browser.
	CaptureErrorPath = Path + "/capture-error"

	template = "gifts"

	recordingField = "recording"
)

// Success is shown after a purchase went through.
const Success = "Obrigado! Avisamos os noivos do seu presente."

// SuccessWithGreeting is shown when the purchase carried a recording.
const SuccessWithGreeting = Success + " O seu recado foi salvo com sucesso!"

// ErrInvalidForm is returned for a request that cannot be parsed.
var ErrInvalidForm = errors.New("invalid purchase form")

var messages = handler.Messages{
	ErrInvalidForm: "Não foi possível ler o formulário. Tente novamente.",
}

type purchaseForm struct {
	BuyerName     string `form:"buyerName" validate:"max=120"`
	RecordingType string `form:"recordingType" validate:"omitempty,max=100"`
}

type captureForm struct {
	Name   string `form:"name" json:"name" validate:"max=100"`
	Detail string `form:"detail" json:"detail" validate:"max=500"`
}

// Service is the gift registry handler service.
type Service struct {
	handler.Service
	store     *state.Store
	flow      *purchase.Flow
	validator *validator.Validate
}

// Handler is the gift registry handler.
var Handler = Service{}

// Init initializes the gift registry handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	if deps.Purchase == nil {
		return handler.ErrNilDeps
	}

	s.store = deps.Store
	s.flow = deps.Purchase
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(Path+"/:id/purchase", s.Purchase)
	app.Post(CaptureErrorPath, s.CaptureError)

	return nil
}

func (s *Service) data(c *fiber.Ctx) fiber.Map {
	return fiber.Map{
		"Navigation": handler.Nav(c, s.store, "Lista de Presentes", navigation.SectionPublic, "gifts"),
		"Gifts":      s.store.Gifts(),
		"Settings":   s.store.Settings(),
	}
}

// Get renders the registry.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(template, s.data(c), handler.BaseLayout)
}

// Purchase handles the purchase form: buyer name, optional recording.
// Browsers posting through the recorder script ask for JSON, plain form
// posts get the registry page back.
func (s *Service) Purchase(c *fiber.Ctx) error {
	in := new(purchaseForm)
	if err := c.BodyParser(in); err != nil {
		log.Debug().Err(err).Msg("failed to parse purchase form")
		return s.respond(c, fiber.StatusBadRequest, ErrInvalidForm, "")
	}

	if err := s.validator.Struct(in); err != nil {
		return s.respond(c, fiber.StatusBadRequest, ErrInvalidForm, "")
	}

	req := purchase.Request{
		GiftID:    c.Params("id"),
		BuyerName: in.BuyerName,
	}

	rec, err := recording(c, in.RecordingType)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read recording")
		return s.respond(c, fiber.StatusBadRequest, ErrInvalidForm, "")
	}

	req.Recording = rec

	res, err := s.flow.Submit(c.UserContext(), req)
	if err != nil {
		return s.respond(c, Status(err), err, "")
	}

	if res.Message != nil {
		return s.respond(c, fiber.StatusOK, nil, SuccessWithGreeting)
	}

	return s.respond(c, fiber.StatusOK, nil, Success)
}

// recording reads the optional recording part. A missing part is no
// recording; an empty one is passed on so the flow can refuse it.
func recording(c *fiber.Ctx, mimeType string) (*purchase.Recording, error) {
	fh, err := c.FormFile(recordingField)
	if err != nil {
		// not multipart or no file part
		return nil, nil //nolint:nilerr
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if mimeType == "" {
		mimeType = fh.Header.Get(fiber.HeaderContentType)
	}

	return &purchase.Recording{Data: data, MIMEType: mimeType}, nil
}

// Status maps a purchase error to the HTTP status of the answer.
func Status(err error) int {
	var uploadErr *media.UploadError

	switch {
	case errors.Is(err, purchase.ErrBuyerNameRequired), errors.Is(err, media.ErrEmptyRecording):
		return fiber.StatusBadRequest
	case errors.Is(err, purchase.ErrGiftNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, purchase.ErrGiftUnavailable):
		return fiber.StatusConflict
	case errors.Is(err, media.ErrNoProvider):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, media.ErrPresetMisconfigured), errors.As(err, &uploadErr):
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

func (s *Service) respond(c *fiber.Ctx, status int, err error, success string) error {
	msg := handler.Message(err, messages)

	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{
			"ok":      err == nil,
			"error":   msg,
			"message": success,
		})
	}

	data := s.data(c)
	data["Error"] = msg
	data["Success"] = success

	return c.Status(status).Render(template, data, handler.BaseLayout)
}

// CaptureError turns a recorder failure reported by the browser into the
// message shown to the guest.
func (s *Service) CaptureError(c *fiber.Ctx) error {
	in := new(captureForm)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": handler.Message(ErrInvalidForm, messages)})
	}

	if err := s.validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": handler.Message(ErrInvalidForm, messages)})
	}

	kind := media.ParseCaptureError(in.Name)

	log.Info().Str("kind", kind.String()).Str("name", in.Name).Msg("recorder failed in browser")

	return c.JSON(fiber.Map{
		"kind":    kind.String(),
		"message": kind.Message(in.Detail),
	})
}
