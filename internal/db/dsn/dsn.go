// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
)

// Create builds the Data Source Name of the configured gorm engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return Postgres(cfg.DB)
	case config.EngineSQLite:
		return cfg.DB.Name
	default:
		return MySQL(cfg.DB)
	}
}

// MySQL builds a go-sql-driver DSN.
func MySQL(db config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)
}

// Postgres builds a postgres URL, usable by gorm, pgx and the fiber
// session storage alike. Extras is appended as the query string.
func Postgres(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: strings.TrimPrefix(db.Extras, "?"),
	}

	return u.String()
}
