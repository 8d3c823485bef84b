// Package daemon wires the configured backends into the state store and the
// web service.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/generate"
	"github.com/GoWeddingSite/GoWeddingSite/internal/purchase"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/session"
)

// OpenTimeout bounds the wait for the first snapshots of the store.
const OpenTimeout = 30 * time.Second

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	store      *state.Store
	webService *web.Service
	res        *resources
}

// Start serves until SIGINT or SIGTERM, then releases every backend.
func (d *Daemon) Start() error {
	defer d.Close()

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// Store returns the state store.
func (d *Daemon) Store() *state.Store {
	return d.store
}

// Web returns the web service.
func (d *Daemon) Web() *web.Service {
	return d.webService
}

// Close stops the store and releases the backends.
func (d *Daemon) Close() {
	d.store.Close()
	d.res.close()
}

// OpenStore opens the configured backend and returns a synchronised store.
// The returned resources must be closed after the store.
func openStore(ctx context.Context, cfg *config.Config) (*state.Store, *resources, error) {
	res, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := state.New(res.backend)

	openCtx, cancel := context.WithTimeout(ctx, OpenTimeout)
	defer cancel()

	if err = store.Open(openCtx); err != nil {
		store.Close()
		res.close()

		return nil, nil, err
	}

	return store, res, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	store, res, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	session.Init(res.sessions)

	uploader, err := newUploader(ctx, cfg.Media)
	if err != nil {
		store.Close()
		res.close()

		return nil, err
	}

	log.Info().
		Str("store", cfg.Store.Backend).
		Str("media", uploader.Name()).
		Msg("backends ready")

	deps := handler.Deps{
		Store:     store,
		Purchase:  purchase.New(store, uploader),
		Generator: generate.NewGemini(cfg.Generator.APIKey, cfg.Generator.Model),
	}

	return &Daemon{
		cfg:        cfg,
		store:      store,
		webService: web.New(cfg, deps),
		res:        res,
	}, nil
}

// Reset puts the stored site back to its starting content and drops every
// session, without starting the web service.
func Reset(ctx context.Context, cfg *config.Config) error {
	store, res, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer res.close()
	defer store.Close()

	if err = store.ResetStore(ctx); err != nil {
		return err
	}

	return res.sessions.Reset()
}
