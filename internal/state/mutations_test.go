package state

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
)

func giftEventually(t *testing.T, s *Store, id string, want func(model.Gift) bool) {
	t.Helper()

	assert.Eventually(t, func() bool {
		g, ok := s.Gift(id)
		return ok && want(g)
	}, waitFor, 10*time.Millisecond)
}

func TestAddGift_StartsAvailable(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem)

	g, err := s.AddGift(ctx, model.Gift{
		ID:             "ignored",
		Name:           "Cotas para a Casa Nova",
		Price:          150,
		Status:         model.GiftConfirmed,
		PurchasedCount: 7,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, g.ID)
	assert.NotEqual(t, "ignored", g.ID)
	assert.Equal(t, model.GiftAvailable, g.Status)
	assert.Zero(t, g.PurchasedCount)

	stored := storedFields(t, mem, docstore.CollectionGifts, g.ID)
	require.NotNil(t, stored)
	assert.Equal(t, string(model.GiftAvailable), stored["status"])
	assert.EqualValues(t, 0, stored["purchasedCount"])

	got, ok := s.Gift(g.ID)
	require.True(t, ok)
	assert.Equal(t, g.Name, got.Name)
	assert.Len(t, s.Gifts(), 1)
}

func TestGiftLifecycle(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem)

	g, err := s.AddGift(ctx, model.Gift{Name: "Jantar", Price: 300})
	require.NoError(t, err)

	require.NoError(t, s.MarkGiftAsPending(ctx, g.ID, "Ana"))

	stored := storedFields(t, mem, docstore.CollectionGifts, g.ID)
	assert.Equal(t, string(model.GiftPending), stored["status"])
	assert.Equal(t, "Ana", stored["buyerName"])
	assert.EqualValues(t, 0, stored["purchasedCount"])

	require.NoError(t, s.ConfirmGiftPayment(ctx, g.ID))
	require.NoError(t, s.ConfirmGiftPayment(ctx, g.ID))

	stored = storedFields(t, mem, docstore.CollectionGifts, g.ID)
	assert.Equal(t, string(model.GiftConfirmed), stored["status"])
	assert.EqualValues(t, 2, stored["purchasedCount"])

	// marking pending again is allowed and leaves the counter alone
	require.NoError(t, s.MarkGiftAsPending(ctx, g.ID, "Bia"))

	stored = storedFields(t, mem, docstore.CollectionGifts, g.ID)
	assert.Equal(t, string(model.GiftPending), stored["status"])
	assert.Equal(t, "Bia", stored["buyerName"])
	assert.EqualValues(t, 2, stored["purchasedCount"])

	giftEventually(t, s, g.ID, func(g model.Gift) bool {
		return g.Status == model.GiftPending && g.PurchasedCount == 2 && g.BuyerName == "Bia"
	})
}

func TestConfirmGiftPayment_FromAvailable(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	mem.Load(docstore.CollectionGifts, []docstore.Document{{
		ID:   "g1",
		Data: rawJSON(t, model.Gift{Name: "Cotas", Price: 150, Status: model.GiftAvailable, PurchasedCount: 4}),
	}})

	s := openStore(t, mem)

	require.NoError(t, s.ConfirmGiftPayment(ctx, "g1"))

	g, ok := s.Gift("g1")
	require.True(t, ok)
	assert.Equal(t, model.GiftConfirmed, g.Status)
	assert.Equal(t, 5, g.PurchasedCount)
}

func TestConfirmGiftPayment_UnknownGift(t *testing.T) {
	s := openStore(t, docstore.NewMemory())

	require.ErrorIs(t, s.ConfirmGiftPayment(context.Background(), "missing"), ErrGiftNotFound)
}

func TestUpdateAndRemoveGift(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem)

	g, err := s.AddGift(ctx, model.Gift{Name: "Jantar", Price: 300})
	require.NoError(t, err)

	require.NoError(t, s.UpdateGift(ctx, g.ID, model.GiftPatch{
		Price:  model.Ptr(350.0),
		Status: model.Ptr(model.GiftConfirmed),
	}))

	stored := storedFields(t, mem, docstore.CollectionGifts, g.ID)
	assert.EqualValues(t, 350, stored["price"])
	assert.Equal(t, "Jantar", stored["name"])
	assert.Equal(t, string(model.GiftConfirmed), stored["status"])

	require.NoError(t, s.RemoveGift(ctx, g.ID))
	assert.Nil(t, storedFields(t, mem, docstore.CollectionGifts, g.ID))

	assert.Eventually(t, func() bool { return len(s.Gifts()) == 0 }, waitFor, 10*time.Millisecond)
}

func TestAddGift_BackendFailure(t *testing.T) {
	boom := errors.New("offline")
	backend := &recordingBackend{Backend: docstore.NewMemory(), failCrt: boom}
	s := openStore(t, backend)

	_, err := s.AddGift(context.Background(), model.Gift{Name: "x"})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, s.Gifts())
}

func TestAddPage(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem)

	created, err := s.AddPage(ctx, model.Page{Title: "Padrinhos", Slug: "/padrinhos", IsVisible: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Sections)

	kept, err := s.AddPage(ctx, model.Page{ID: "dress-code", Title: "Dress Code", Slug: "/dress-code"})
	require.NoError(t, err)
	assert.Equal(t, "dress-code", kept.ID)

	assert.NotNil(t, storedFields(t, mem, docstore.CollectionPages, created.ID))
	assert.NotNil(t, storedFields(t, mem, docstore.CollectionPages, "dress-code"))

	_, ok := s.Page("dress-code")
	assert.True(t, ok)
}

func TestUpdatePage_ReplacesSections(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, docstore.NewMemory())

	sections := []model.Section{{ID: "t1", Type: model.SectionText, Title: "Novo", Content: "texto"}}
	require.NoError(t, s.UpdatePage(ctx, seed.HomePageID, model.PagePatch{Sections: &sections}))

	assert.Eventually(t, func() bool {
		p, ok := s.Page(seed.HomePageID)
		return ok && len(p.Sections) == 1 && p.Sections[0].ID == "t1" && p.Sections[0].ImageURL == ""
	}, waitFor, 10*time.Millisecond)
}

func TestRemovePage_SystemPageIsNotProtected(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem)

	assert.Eventually(t, func() bool {
		return len(mem.Documents(docstore.CollectionPages)) == 4
	}, waitFor, 10*time.Millisecond)

	require.NoError(t, s.RemovePage(ctx, seed.GiftsPageID))

	assert.Nil(t, storedFields(t, mem, docstore.CollectionPages, seed.GiftsPageID))
	assert.Eventually(t, func() bool {
		_, ok := s.Page(seed.GiftsPageID)
		return !ok
	}, waitFor, 10*time.Millisecond)
}

func TestMessages_NewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 2, 18, 0, 0, 0, time.UTC)
	tick := 0

	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	s := openStore(t, docstore.NewMemory(), WithClock(clock))

	for i := range 3 {
		m, err := s.AddMessage(ctx, model.Message{
			Author:  fmt.Sprintf("guest %d", i),
			Type:    model.MediaAudio,
			Content: "https://cdn.example.com/a.webm",
		})
		require.NoError(t, err)
		assert.Equal(t, base.Add(time.Duration(i+1)*time.Minute), m.CreatedAt)
	}

	assert.Eventually(t, func() bool {
		msgs := s.Messages()
		return len(msgs) == 3 &&
			msgs[0].Author == "guest 2" &&
			msgs[1].Author == "guest 1" &&
			msgs[2].Author == "guest 0"
	}, waitFor, 10*time.Millisecond)
}

func TestMessages_TiesByID(t *testing.T) {
	at := time.Date(2026, 8, 2, 18, 0, 0, 0, time.UTC)
	mem := docstore.NewMemory()
	mem.Load(docstore.CollectionMessages, []docstore.Document{
		{ID: "b", Data: rawJSON(t, model.Message{Author: "B", Type: model.MediaVideo, CreatedAt: at})},
		{ID: "a", Data: rawJSON(t, model.Message{Author: "A", Type: model.MediaVideo, CreatedAt: at})},
		{ID: "c", Data: rawJSON(t, model.Message{Author: "C", Type: model.MediaVideo, CreatedAt: at.Add(time.Second)})},
	})

	s := openStore(t, mem)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "c", msgs[0].ID)
	assert.Equal(t, "a", msgs[1].ID)
	assert.Equal(t, "b", msgs[2].ID)
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem)

	m, err := s.AddMessage(ctx, model.Message{Author: "Ana", Type: model.MediaAudio, Content: "u"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteMessage(ctx, m.ID))

	assert.Empty(t, mem.Documents(docstore.CollectionMessages))
	assert.Eventually(t, func() bool { return len(s.Messages()) == 0 }, waitFor, 10*time.Millisecond)
}

func sequence(ids ...string) func() string {
	i := 0

	return func() string {
		id := ids[i%len(ids)]
		i++

		return id
	}
}

func TestResetStore(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s := openStore(t, mem, WithIDGenerator(sequence("r1", "r2")))

	_, err := s.AddGift(ctx, model.Gift{Name: "old"})
	require.NoError(t, err)
	_, err = s.AddPage(ctx, model.Page{ID: "custom", Title: "Custom", Slug: "/custom"})
	require.NoError(t, err)
	_, err = s.AddMessage(ctx, model.Message{Author: "Ana", Type: model.MediaAudio, Content: "u"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateSettings(ctx, model.SettingsPatch{CoupleName: model.Ptr("Outro casal")}))
	require.NoError(t, s.UpdatePage(ctx, seed.HomePageID, model.PagePatch{Title: model.Ptr("Mudou")}))

	require.True(t, s.Login(seed.DefaultSettings().AdminPassword))

	require.NoError(t, s.ResetStore(ctx))

	assert.False(t, s.IsAuthenticated())

	gifts := mem.Documents(docstore.CollectionGifts)
	require.Len(t, gifts, 2)
	assert.Equal(t, "r1", gifts[0].ID)
	assert.Equal(t, "r2", gifts[1].ID)

	pages := mem.Documents(docstore.CollectionPages)
	require.Len(t, pages, 4)
	assert.Equal(t, "Nossa História", storedFields(t, mem, docstore.CollectionPages, seed.HomePageID)["title"])

	assert.Empty(t, mem.Documents(docstore.CollectionMessages))
	assert.Equal(t, seed.DefaultSettings().CoupleName,
		storedFields(t, mem, docstore.CollectionSettings, docstore.SettingsID)["coupleName"])

	assert.Eventually(t, func() bool {
		st := s.Snapshot()
		return len(st.Gifts) == 2 && len(st.Pages) == 4 && len(st.Messages) == 0 &&
			st.Settings == seed.DefaultSettings()
	}, waitFor, 10*time.Millisecond)
}

func TestResetStore_ReportsFailures(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	backend := &recordingBackend{Backend: mem}
	s := openStore(t, backend)

	_, err := s.AddMessage(ctx, model.Message{Author: "Ana", Type: model.MediaAudio, Content: "u"})
	require.NoError(t, err)

	boom := errors.New("permission denied")
	backend.fail(nil, nil, boom)

	err = s.ResetStore(ctx)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "reset incomplete")

	// steps that could run still ran
	assert.Len(t, mem.Documents(docstore.CollectionGifts), 2)
	assert.Len(t, mem.Documents(docstore.CollectionMessages), 1)
}
