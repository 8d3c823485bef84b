package login

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/navigation"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	template = "login"
)

var (
	// ErrWrongPassword is returned when the password does not match.
	ErrWrongPassword = errors.New("wrong password")

	// ErrInternalServerError is returned when the session cannot be created.
	ErrInternalServerError = errors.New("internal server error")
)

var messages = handler.Messages{
	ErrWrongPassword:       "Senha incorreta. Tente novamente.",
	ErrInternalServerError: "Erro interno. Tente novamente mais tarde.",
}

type form struct {
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store *state.Store
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if err := handler.Check(app, cfg, deps); err != nil {
		return err
	}

	s.cfg = cfg
	s.store = deps.Store

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

func (s *Service) render(c *fiber.Ctx, err error) error {
	data := fiber.Map{
		"Navigation": handler.Nav(c, s.store, "Área dos Noivos", navigation.SectionPublic, "login"),
	}

	if err != nil {
		data["Error"] = handler.Message(err, messages)
	}

	return c.Render(template, data, handler.BaseLayout)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, nil)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(form)
	if err := c.BodyParser(in); err != nil {
		log.Debug().Err(err).Msg("failed to parse login form")
	}

	if !s.store.Authenticate(in.Password) {
		metrics.Logins.WithLabelValues(metrics.ResultError).Inc()
		log.Warn().Str("ip", c.IP()).Msg("admin login failed")

		return s.render(c.Status(fiber.StatusUnauthorized), ErrWrongPassword)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.render(c.Status(fiber.StatusInternalServerError), ErrInternalServerError)
	}

	userSession := &session.Data{
		Authenticated: true,
		LoginAt:       time.Now(),
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.render(c.Status(fiber.StatusInternalServerError), ErrInternalServerError)
	}

	metrics.Logins.WithLabelValues(metrics.ResultOK).Inc()

	// set login cookie
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(handler.AdminPath)
}
