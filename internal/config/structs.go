package config

import (
	"time"

	"github.com/GoWeddingSite/GoWeddingSite/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Store     Store
	Media     Media
	Generator Generator
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	CacheEnabled   bool    // true = enable cache, false = disable cache
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	BodyLimitMB    int     // max request body, recordings included
	Session        Session // session settings
}

// Store selects where the site content lives.
type Store struct {
	Backend   string // gorm or local
	LocalPath string // badger directory of the local backend, empty for memory only
	MaxBytes  int64  // size limit of the local state blob, 0 = none
	Notify    bool   // fan out changes through postgres LISTEN/NOTIFY
	Channel   string // notification channel
}

// Media selects the host of guest recordings.
type Media struct {
	Provider   string // cloudinary, s3 or none
	Timeout    time.Duration
	Cloudinary Cloudinary
	S3         S3
}

// Cloudinary holds the unsigned upload settings.
type Cloudinary struct {
	CloudName    string
	UploadPreset string
	Endpoint     string
}

// S3 holds the bucket settings.
type S3 struct {
	Region        string
	Bucket        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	Prefix        string
}

// Generator holds the page generator settings. The API key set in the
// admin settings takes precedence over APIKey.
type Generator struct {
	APIKey string
	Model  string
}
