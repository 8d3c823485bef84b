// Package metrics holds the business counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wedding_site"

var (
	// GiftPurchases counts purchase submissions by result.
	GiftPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gift_purchases_total",
			Help:      "Number of gift purchase submissions, differentiated by result.",
		},
		[]string{"result"},
	)

	// GiftConfirmations counts payments confirmed by an organizer.
	GiftConfirmations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gift_confirmations_total",
			Help:      "Number of gift payments confirmed.",
		},
	)

	// MediaUploads counts greeting uploads by provider and result.
	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Number of media uploads, differentiated by provider and result.",
		},
		[]string{"provider", "result"},
	)

	// StoreWarnings counts changes that were applied but not persisted.
	StoreWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_warnings_total",
			Help:      "Number of changes kept in memory because persisting them failed.",
		},
	)

	// Logins counts admin login attempts by result.
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Number of admin login attempts, differentiated by result.",
		},
		[]string{"result"},
	)

	// PagesGenerated counts pages written by the generator.
	PagesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_generated_total",
			Help:      "Number of page generation requests, differentiated by result.",
		},
		[]string{"result"},
	)
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
