package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	accesslog "github.com/GoWeddingSite/GoWeddingSite/internal/logger/adapter/fiber"
	"github.com/GoWeddingSite/GoWeddingSite/internal/render"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/admin/general"
	admingift "github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/admin/gift"
	adminmessage "github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/admin/message"
	adminpage "github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/admin/page"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/admin/reset"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/gifts"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/login"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/logout"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/messages"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/page"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/transparency"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers load balancer probes.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the site.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers OK.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

func newEngine(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
	templateEngine.AddFunc("money", render.Money)
	templateEngine.AddFunc("paragraphs", render.Paragraphs)
	templateEngine.AddFunc("lines", func(v any) []string {
		switch m := v.(type) {
		case string:
			if m == "" {
				return nil
			}

			return []string{m}
		case []string:
			return m
		}

		return nil
	})
	// greetings kept inline are data URLs, which html/template would
	// otherwise replace in src attributes
	templateEngine.AddFunc("mediaSrc", func(content string) any {
		if render.InlineMedia(content) {
			return template.URL(content) //nolint:gosec
		}

		return content
	})
	templateEngine.AddFunc("json", func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		return template.JS(b), err //nolint:gosec
	})

	return templateEngine
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps handler.Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if deps.Store == nil {
		panic("store cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimitMB << 20, //nolint:mnd
			Views:          newEngine(cfg),
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		SkipPrefixes:  []string{"/static/", MetricsPath},
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// session check, admin pages need an organizer
	app.Use(auth.Middleware)

	// the page handler takes every path left and must come last
	services := []handler.Service{
		&login.Handler,
		&logout.Handler,
		&gifts.Handler,
		&transparency.Handler,
		&messages.Handler,
		&general.Handler,
		&admingift.Handler,
		&adminpage.Handler,
		&adminmessage.Handler,
		&reset.Handler,
		&page.Handler,
	}

	for _, h := range services {
		if err := h.Init(app, cfg, deps); err != nil {
			log.Fatal().Err(err).Msg(handler.ErrNilACDFatalLogMsg)
		}
	}

	return service
}
