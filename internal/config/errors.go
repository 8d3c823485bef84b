package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrUnknownStoreBackend error if config store.backend is not supported.
	ErrUnknownStoreBackend = errors.New("toml config store.backend must be gorm or local")

	// ErrUnknownMediaProvider error if config media.provider is not supported.
	ErrUnknownMediaProvider = errors.New("toml config media.provider must be cloudinary, s3 or none")

	// ErrNotifyNeedsPostgres error if store.notify is set without postgres.
	ErrNotifyNeedsPostgres = errors.New("toml config store.notify needs the gorm backend on postgres")

	// ErrMissingMediaSetting error if the selected media provider lacks a setting.
	ErrMissingMediaSetting = errors.New("toml config media provider setting missing")
)
