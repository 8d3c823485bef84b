package daemon

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/db/dsn"
	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/localstore"
)

const sessionTable = "sessions"

// resources are the handles the daemon owns besides the store.
type resources struct {
	backend  docstore.Backend
	sessions fiber.Storage
	closers  []func() error
}

func (r *resources) close() {
	// last opened, first closed
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			log.Error().Err(err).Msg("failed to release backend")
		}
	}

	r.closers = nil
}

func openBackend(ctx context.Context, cfg *config.Config) (*resources, error) {
	if cfg.Store.Backend == config.StoreGorm {
		return openGormBackend(ctx, cfg)
	}

	return openLocalBackend(cfg)
}

func openLocalBackend(cfg *config.Config) (*resources, error) {
	db, err := localstore.OpenDB(cfg.Store.LocalPath)
	if err != nil {
		return nil, err
	}

	res := &resources{closers: []func() error{db.Close}}

	backend, err := localstore.New(db, localstore.WithMaxBytes(int(cfg.Store.MaxBytes)))
	if err != nil {
		res.close()
		return nil, err
	}

	res.backend = backend
	res.sessions = localstore.NewSessionStorage(db)
	res.closers = append(res.closers, backend.Close)

	return res, nil
}

// OpenGorm opens the configured relational database.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.MySQL(cfg.DB))
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Postgres(cfg.DB))
	case config.EngineSQLite:
		dialector = sqlite.Open(cfg.DB.Name)
	default:
		return nil, config.ErrUnknownGormEngine
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect database")
	}

	return db, nil
}

func openGormBackend(ctx context.Context, cfg *config.Config) (*resources, error) {
	db, err := OpenGorm(cfg)
	if err != nil {
		return nil, err
	}

	res := &resources{}

	sqlDB, err := db.DB()
	if err == nil {
		res.closers = append(res.closers, sqlDB.Close)
	}

	var opts []docstore.GormOption

	var notifier *docstore.PGNotifier

	if cfg.Store.Notify {
		notifier, err = docstore.NewPGNotifier(ctx, dsn.Postgres(cfg.DB), cfg.Store.Channel)
		if err != nil {
			res.close()
			return nil, err
		}

		res.closers = append(res.closers, func() error {
			notifier.Close()
			return nil
		})
		opts = append(opts, docstore.WithNotifier(notifier))
	}

	backend, err := docstore.NewGorm(db, opts...)
	if err != nil {
		res.close()
		return nil, err
	}

	res.backend = backend
	res.closers = append(res.closers, backend.Close)

	if notifier != nil {
		listenCtx, cancel := context.WithCancel(context.Background())

		go notifier.ListenForever(listenCtx, backend.Refresh)

		res.closers = append(res.closers, func() error {
			cancel()
			return nil
		})
	}

	if res.sessions, err = openSessions(cfg, res); err != nil {
		res.close()
		return nil, err
	}

	return res, nil
}

// openSessions keeps sessions next to the documents. Sqlite has no fiber
// storage, so those deployments keep them in a badger database.
func openSessions(cfg *config.Config, res *resources) (fiber.Storage, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		s := sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg.DB),
			Table:         sessionTable,
		})
		res.closers = append(res.closers, s.Close)

		return s, nil
	case config.EnginePostgres:
		s := sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg.DB),
			Table:         sessionTable,
		})
		res.closers = append(res.closers, s.Close)

		return s, nil
	}

	db, err := openSessionDB(cfg.Store.LocalPath)
	if err != nil {
		return nil, err
	}

	res.closers = append(res.closers, db.Close)

	return localstore.NewSessionStorage(db), nil
}

func openSessionDB(path string) (*badger.DB, error) {
	if path != "" {
		path += "-sessions"
	}

	return localstore.OpenDB(path)
}
