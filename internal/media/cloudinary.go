package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
)

// DefaultCloudinaryEndpoint is the public Cloudinary API.
const DefaultCloudinaryEndpoint = "https://api.cloudinary.com"

// unknownAPIKey is what Cloudinary answers when an unsigned upload uses a
// signed preset.
const unknownAPIKey = "Unknown API key"

// ErrPresetMisconfigured replaces the "Unknown API key" answer of the host.
var ErrPresetMisconfigured = errors.New("cloudinary upload preset is signed, unsigned uploads are refused")

// UploadError is a non-2xx answer of the media host.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Erro no upload para o Cloudinary (HTTP %d)", e.StatusCode)
	}

	return e.Message
}

// CloudinaryConfig holds the unsigned upload settings.
type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	Endpoint     string
	Timeout      time.Duration
}

// Cloudinary uploads through the unsigned upload API.
type Cloudinary struct {
	cfg    CloudinaryConfig
	client *http.Client
}

// NewCloudinary returns a Cloudinary uploader. A zero Timeout means none.
func NewCloudinary(cfg CloudinaryConfig) *Cloudinary {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultCloudinaryEndpoint
	}

	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	return &Cloudinary{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name implements Uploader.
func (c *Cloudinary) Name() string {
	return ProviderCloudinary
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload implements Uploader. The resource type is left to the host.
func (c *Cloudinary) Upload(ctx context.Context, u Upload) (string, error) {
	url, err := c.upload(ctx, u)
	if err != nil {
		metrics.MediaUploads.WithLabelValues(ProviderCloudinary, metrics.ResultError).Inc()
		return "", err
	}

	metrics.MediaUploads.WithLabelValues(ProviderCloudinary, metrics.ResultOK).Inc()

	return url, nil
}

func (c *Cloudinary) upload(ctx context.Context, u Upload) (string, error) {
	if len(u.Data) == 0 {
		return "", ErrEmptyRecording
	}

	body, contentType, err := c.form(u)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/auto/upload", c.cfg.Endpoint, c.cfg.CloudName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to build upload request")
	}

	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(err, "upload request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to read upload response")
	}

	var out cloudinaryResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil && out.Error != nil {
			msg = out.Error.Message
		}

		log.Warn().Int("status", resp.StatusCode).Str("message", msg).Msg("media upload rejected")

		if msg == unknownAPIKey {
			return "", ErrPresetMisconfigured
		}

		return "", &UploadError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return "", pkgerrors.Wrap(decodeErr, "failed to decode upload response")
	}

	if out.SecureURL == "" {
		return "", &UploadError{StatusCode: resp.StatusCode, Message: "resposta sem secure_url"}
	}

	return out.SecureURL, nil
}

func (c *Cloudinary) form(u Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	name := u.Filename
	if name == "" {
		name = "recado" + Extension(u.MIMEType)
	}

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, "", err
	}

	if _, err = part.Write(u.Data); err != nil {
		return nil, "", err
	}

	for k, v := range map[string]string{"upload_preset": c.cfg.UploadPreset, "tags": Tag} {
		if err = w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	if err = w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
