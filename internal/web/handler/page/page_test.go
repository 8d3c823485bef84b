package page

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/handlertest"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "/", Slug("/"))
	assert.Equal(t, "/", Slug(""))
	assert.Equal(t, "/dress-code", Slug("/dress-code"))
	assert.Equal(t, "/dress-code", Slug("/dress-code/"))
}

func TestGet_HomeAndAuthoredPages(t *testing.T) {
	store, _ := handlertest.NewStore(t)

	_, err := store.AddPage(context.Background(), model.Page{
		Title:     "Dress Code",
		Slug:      "/dress-code",
		IsVisible: false,
		Sections:  []model.Section{{ID: "s1", Type: model.SectionText, Content: "Traje esporte fino"}},
	})
	require.NoError(t, err)

	handlertest.Eventually(t, func() bool {
		_, ok := store.PageBySlug("/dress-code")
		return ok
	})

	app := handlertest.NewApp(false)
	require.NoError(t, (&Service{}).Init(app, handlertest.NewConfig(), handler.Deps{Store: store}))

	resp := handlertest.Get(t, app, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, template, handlertest.Body(t, resp))

	resp = handlertest.Get(t, app, "/dress-code")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "hidden pages stay reachable")
}

func TestGet_UnknownSlug(t *testing.T) {
	store, _ := handlertest.NewStore(t)

	app := handlertest.NewApp(false)
	require.NoError(t, (&Service{}).Init(app, handlertest.NewConfig(), handler.Deps{Store: store}))

	resp := handlertest.Get(t, app, "/nao-existe")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := handlertest.Body(t, resp)
	assert.Contains(t, body, notFoundTemplate)
	assert.Contains(t, body, "Página não encontrada")
}

func TestInit_NilStore(t *testing.T) {
	err := (&Service{}).Init(handlertest.NewApp(false), handlertest.NewConfig(), handler.Deps{})
	assert.ErrorIs(t, err, handler.ErrNilDeps)
}
