// Package purchase runs the visitor side of a gift purchase: name, optional
// greeting, pending payment.
package purchase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/media"
	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

var (
	// ErrBuyerNameRequired is returned for a blank buyer name.
	ErrBuyerNameRequired = errors.New("buyer name is required")

	// ErrGiftNotFound is returned for an unknown gift.
	ErrGiftNotFound = errors.New("gift not found")

	// ErrGiftUnavailable is returned for a gift whose payment is already confirmed.
	ErrGiftUnavailable = errors.New("gift payment already confirmed")

	// ErrPartialSubmission is returned when the greeting was stored but the
	// gift could not be marked pending.
	ErrPartialSubmission = errors.New("greeting saved but gift not marked pending")
)

// Store is the part of the state store the flow writes to.
type Store interface {
	Gift(id string) (model.Gift, bool)
	AddMessage(ctx context.Context, m model.Message) (model.Message, error)
	MarkGiftAsPending(ctx context.Context, id, buyerName string) error
}

// Recording is a finished capture from the browser.
type Recording struct {
	Data     []byte
	MIMEType string
}

// Kind reports whether the recording is audio or video.
func (r Recording) Kind() model.MediaType {
	if strings.HasPrefix(strings.ToLower(r.MIMEType), "video/") {
		return model.MediaVideo
	}

	return model.MediaAudio
}

// PreviewURL returns the recording as an inline data URL. It is stored as
// the greeting when no media host is configured.
func (r Recording) PreviewURL() string {
	return "data:" + r.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

// Request is one submission of the gift form.
type Request struct {
	GiftID    string
	BuyerName string
	Recording *Recording
}

// Result tells the caller what was written.
type Result struct {
	Gift    model.Gift
	Message *model.Message
}

// Flow submits purchases.
type Flow struct {
	store    Store
	uploader media.Uploader
}

// New returns a flow writing to store and uploading through uploader.
func New(store Store, uploader media.Uploader) *Flow {
	if uploader == nil {
		uploader = media.Disabled{}
	}

	return &Flow{store: store, uploader: uploader}
}

// Submit validates the request, uploads the recording if there is one,
// stores the greeting and marks the gift pending. The two writes are not
// atomic: when the second one fails the greeting stays and
// ErrPartialSubmission is returned.
func (f *Flow) Submit(ctx context.Context, req Request) (Result, error) {
	res, err := f.submit(ctx, req)

	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}

	metrics.GiftPurchases.WithLabelValues(result).Inc()

	return res, err
}

func (f *Flow) submit(ctx context.Context, req Request) (Result, error) {
	name := strings.TrimSpace(req.BuyerName)
	if name == "" {
		return Result{}, ErrBuyerNameRequired
	}

	gift, ok := f.store.Gift(req.GiftID)
	if !ok {
		return Result{}, ErrGiftNotFound
	}

	if gift.Status == model.GiftConfirmed {
		return Result{}, ErrGiftUnavailable
	}

	var res Result

	if req.Recording != nil {
		url, err := f.upload(ctx, *req.Recording)
		if err != nil {
			log.Warn().Err(err).Str("gift", gift.ID).Msg("greeting upload failed, purchase aborted")
			return Result{}, err
		}

		msg, err := f.store.AddMessage(ctx, model.Message{
			Author:  name,
			Type:    req.Recording.Kind(),
			Content: url,
			GiftID:  gift.ID,
		})
		if err != nil {
			return Result{}, pkgerrors.Wrap(err, "failed to save greeting")
		}

		res.Message = &msg
	}

	if err := f.store.MarkGiftAsPending(ctx, gift.ID, name); err != nil {
		if res.Message != nil {
			log.Error().Err(err).Str("gift", gift.ID).Str("message", res.Message.ID).
				Msg("greeting stored but gift not marked pending")

			return res, errors.Join(ErrPartialSubmission, err)
		}

		return Result{}, err
	}

	gift.Status = model.GiftPending
	gift.BuyerName = name
	res.Gift = gift

	log.Info().Str("gift", gift.ID).Bool("greeting", res.Message != nil).Msg("gift marked pending")

	return res, nil
}

// upload sends the recording to the media host. Without one the greeting is
// kept inline in the message itself.
func (f *Flow) upload(ctx context.Context, rec Recording) (string, error) {
	if len(rec.Data) == 0 {
		return "", media.ErrEmptyRecording
	}

	url, err := f.uploader.Upload(ctx, media.Upload{
		Data:     rec.Data,
		MIMEType: rec.MIMEType,
	})
	if errors.Is(err, media.ErrNoProvider) {
		log.Debug().Int("bytes", len(rec.Data)).Msg("no media host, greeting stored inline")
		return rec.PreviewURL(), nil
	}

	return url, err
}
