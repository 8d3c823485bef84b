package state

import (
	"context"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// AddGift stores a new gift. The gift always starts available with a zero
// counter, whatever the caller passed for those two fields.
func (s *Store) AddGift(ctx context.Context, g model.Gift) (model.Gift, error) {
	g.ID = ""
	g.Status = model.GiftAvailable
	g.PurchasedCount = 0

	if err := s.checkOpen(); err != nil {
		return model.Gift{}, err
	}

	id, err := s.backend.Create(ctx, docstore.CollectionGifts, g)
	if id == "" {
		return model.Gift{}, err
	}

	g.ID = id

	// a snapshot may already carry the gift; upsert keeps one copy
	_ = s.update(func(st *model.AppState) {
		if i := giftIndex(st.Gifts, id); i >= 0 {
			st.Gifts[i] = g
		} else {
			st.Gifts = append(st.Gifts, g)
		}
	})

	return g, s.persisted(err)
}

// UpdateGift merges patch into a gift. This is the organizer's direct edit
// and may set any field combination.
func (s *Store) UpdateGift(ctx context.Context, id string, patch model.GiftPatch) error {
	fields, err := patch.Fields()
	if err != nil {
		return err
	}

	var applyErr error

	err = s.update(func(st *model.AppState) {
		if i := giftIndex(st.Gifts, id); i >= 0 {
			applyErr = patch.ApplyTo(&st.Gifts[i])
		}
	})
	if err != nil {
		return err
	}

	if applyErr != nil {
		return applyErr
	}

	return s.persisted(s.backend.Update(ctx, docstore.CollectionGifts, id, fields))
}

// RemoveGift deletes a gift at any stage of its lifecycle.
func (s *Store) RemoveGift(ctx context.Context, id string) error {
	err := s.update(func(st *model.AppState) {
		if i := giftIndex(st.Gifts, id); i >= 0 {
			st.Gifts = append(st.Gifts[:i:i], st.Gifts[i+1:]...)
		}
	})
	if err != nil {
		return err
	}

	return s.persisted(s.backend.Delete(ctx, docstore.CollectionGifts, id))
}

// MarkGiftAsPending records a visitor's intent to pay. The counter is left
// alone. There is no guard on the current status: a confirmed gift can be
// marked pending again through this call, callers decide whether to allow it.
func (s *Store) MarkGiftAsPending(ctx context.Context, id, buyerName string) error {
	err := s.update(func(st *model.AppState) {
		if i := giftIndex(st.Gifts, id); i >= 0 {
			st.Gifts[i].Status = model.GiftPending
			st.Gifts[i].BuyerName = buyerName
		}
	})
	if err != nil {
		return err
	}

	return s.persisted(s.backend.Update(ctx, docstore.CollectionGifts, id, map[string]any{
		"status":    model.GiftPending,
		"buyerName": buyerName,
	}))
}

// ConfirmGiftPayment marks a gift confirmed and increments its counter by
// one, starting from the counter currently in the mirror.
func (s *Store) ConfirmGiftPayment(ctx context.Context, id string) error {
	var (
		count int
		found bool
	)

	err := s.update(func(st *model.AppState) {
		i := giftIndex(st.Gifts, id)
		if i < 0 {
			return
		}

		found = true
		count = st.Gifts[i].PurchasedCount + 1
		st.Gifts[i].PurchasedCount = count
		st.Gifts[i].Status = model.GiftConfirmed
	})
	if err != nil {
		return err
	}

	if !found {
		return ErrGiftNotFound
	}

	err = s.persisted(s.backend.Update(ctx, docstore.CollectionGifts, id, map[string]any{
		"status":         model.GiftConfirmed,
		"purchasedCount": count,
	}))
	if err == nil {
		metrics.GiftConfirmations.Inc()
	}

	return err
}
