package docstore

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docid"
)

// DefaultChannel is the postgres notification channel used for changes.
const DefaultChannel = "wedding_site_changes"

const payloadSeparator = "|"

// A dropped listener reconnects after a delay doubling between these bounds.
const (
	ListenRetryMin = time.Second
	ListenRetryMax = time.Minute
)

// PGNotifier spreads change notifications between server instances sharing
// one postgres database through LISTEN/NOTIFY.
type PGNotifier struct {
	pool     *pgxpool.Pool
	channel  string
	instance string
}

// NewPGNotifier opens a connection pool for dsn.
func NewPGNotifier(ctx context.Context, dsn, channel string) (*PGNotifier, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to open postgres pool")
	}

	if channel == "" {
		channel = DefaultChannel
	}

	return &PGNotifier{
		pool:     pool,
		channel:  channel,
		instance: docid.NewLen(12),
	}, nil
}

// Notify implements Notifier.
func (n *PGNotifier) Notify(ctx context.Context, collection string) error {
	_, err := n.pool.Exec(ctx, "SELECT pg_notify($1, $2)", n.channel, encodePayload(collection, n.instance))

	return pkgerrors.Wrap(err, "pg_notify failed")
}

// Listen blocks until ctx is done, calling refresh for every change another
// instance announced.
func (n *PGNotifier) Listen(ctx context.Context, refresh func(ctx context.Context, collection string) error) error {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to acquire listen connection")
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{n.channel}.Sanitize()); err != nil {
		return pkgerrors.Wrap(err, "LISTEN failed")
	}

	log.Info().Str("channel", n.channel).Str("instance", n.instance).Msg("listening for document changes")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return pkgerrors.Wrap(err, "waiting for notification failed")
		}

		collection, origin, ok := decodePayload(notification.Payload)
		if !ok || origin == n.instance {
			continue
		}

		if err = refresh(ctx, collection); err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("failed to refresh collection")
		}
	}
}

// ListenForever runs Listen until ctx is done, reconnecting after every
// failure. Notifications sent while disconnected are lost, so each
// reconnect refreshes every collection first.
func (n *PGNotifier) ListenForever(ctx context.Context, refresh func(ctx context.Context, collection string) error) {
	keepListening(ctx,
		func(ctx context.Context) error { return n.Listen(ctx, refresh) },
		func(ctx context.Context) { refreshAll(ctx, refresh) },
		ListenRetryMin, ListenRetryMax)
}

func refreshAll(ctx context.Context, refresh func(ctx context.Context, collection string) error) {
	for _, collection := range Collections {
		if err := refresh(ctx, collection); err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("failed to refresh collection after reconnect")
		}
	}
}

func keepListening(ctx context.Context, listen func(context.Context) error, resync func(context.Context),
	minDelay, maxDelay time.Duration,
) {
	delay := minDelay

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			resync(ctx)
		}

		started := time.Now()
		err := listen(ctx)

		if ctx.Err() != nil {
			return
		}

		// a listener that stayed up for a while starts over with short delays
		if time.Since(started) > maxDelay {
			delay = minDelay
		}

		log.Warn().Err(err).Dur("retry", delay).Int("attempt", attempt+1).Msg("change listener stopped, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay = min(delay*2, maxDelay)
	}
}

// Close closes the pool.
func (n *PGNotifier) Close() {
	n.pool.Close()
}

func encodePayload(collection, instance string) string {
	return collection + payloadSeparator + instance
}

func decodePayload(payload string) (collection, instance string, ok bool) {
	collection, instance, ok = strings.Cut(payload, payloadSeparator)
	if collection == "" {
		return "", "", false
	}

	return collection, instance, ok
}
