package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// Rotation holds the lumberjack limits of one log file.
type Rotation struct {
	MaxSize    int `toml:"maxSize"`    // megabytes
	MaxBackups int `toml:"maxBackups"` // files kept
	MaxAge     int `toml:"maxAge"`     // days
}

// LogFile implements a file based logger, one file per level group.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog string `toml:"access"`
	ErrorLog  string `toml:"error"`
	InfoLog   string `toml:"info"`
	TraceLog  string `toml:"trace"`
	WarnLog   string `toml:"warn"`

	Access Rotation `toml:"accessRotation"`
	Error  Rotation `toml:"errorRotation"`
	Info   Rotation `toml:"infoRotation"`
	Trace  Rotation `toml:"traceRotation"`
	Warn   Rotation `toml:"warnRotation"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole writes the fiber access log to stdout.
	// Console.Enabled must be true as well.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	File LogFile `toml:"file"`
}
