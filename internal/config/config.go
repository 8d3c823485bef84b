// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvJSON names the environment variable whose JSON overrides the file.
const EnvJSON = "GO_WEDDING_SITE_CONFIG_JSON"

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if env := os.Getenv(EnvJSON); env != "" {
		c, err = decodeAndMergeConfig(c, env)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from "+EnvJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the server cannot start without and fills
// in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.BodyLimitMB == 0 {
		c.Webserver.BodyLimitMB = 64
	}

	if c.Store.Backend == "" {
		c.Store.Backend = StoreLocal
	}

	switch c.Store.Backend {
	case StoreLocal:
	case StoreGorm:
		switch c.DB.GormEngine {
		case EngineMySQL, EnginePostgres, EngineSQLite:
		default:
			return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownStoreBackend, invalidErrMessage)
	}

	if c.Store.Notify && (c.Store.Backend != StoreGorm || c.DB.GormEngine != EnginePostgres) {
		return errors.Wrap(ErrNotifyNeedsPostgres, invalidErrMessage)
	}

	return validateMedia(&c.Media)
}

func validateMedia(m *Media) error {
	if m.Provider == "" {
		m.Provider = "none"
	}

	switch m.Provider {
	case "none":
	case "cloudinary":
		if m.Cloudinary.CloudName == "" || m.Cloudinary.UploadPreset == "" {
			return errors.Wrap(ErrMissingMediaSetting, "media.cloudinary needs cloudName and uploadPreset")
		}
	case "s3":
		if m.S3.Bucket == "" || m.S3.PublicBaseURL == "" {
			return errors.Wrap(ErrMissingMediaSetting, "media.s3 needs bucket and publicBaseURL")
		}
	default:
		return errors.Wrap(ErrUnknownMediaProvider, "invalid config")
	}

	return nil
}
