// Package media stores guest recordings on an external host and returns a
// durable URL for them.
package media

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEmptyRecording is returned for a zero byte payload.
	ErrEmptyRecording = errors.New("recording is empty")

	// ErrNoProvider is returned when recordings arrive but no media host is configured.
	ErrNoProvider = errors.New("no media provider configured")
)

// Provider names accepted by the configuration.
const (
	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
	ProviderNone       = "none"
)

// Tag marks every recording uploaded by the site.
const Tag = "casamento_recados"

// Upload is a finished recording.
type Upload struct {
	Data     []byte
	MIMEType string
	Filename string
}

// Uploader sends a recording to the media host.
type Uploader interface {
	Upload(ctx context.Context, u Upload) (string, error)
	Name() string
}

// Disabled refuses every upload.
type Disabled struct{}

// Upload implements Uploader.
func (Disabled) Upload(context.Context, Upload) (string, error) {
	return "", ErrNoProvider
}

// Name implements Uploader.
func (Disabled) Name() string {
	return ProviderNone
}

// Extension guesses a file extension from a recorder MIME type such as
// "video/webm;codecs=vp8,opus".
func Extension(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.TrimSpace(strings.ToLower(base))

	switch base {
	case "video/webm", "audio/webm":
		return ".webm"
	case "video/mp4":
		return ".mp4"
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/ogg", "video/ogg":
		return ".ogg"
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	}

	return ".bin"
}
