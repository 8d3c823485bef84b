package general

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*state.Store, *fiber.App) {
	t.Helper()

	store, _ := handlertest.NewStore(t)

	app := handlertest.NewApp(true)
	require.NoError(t, new(Service).Init(app, handlertest.NewConfig(), handler.Deps{Store: store}))

	return store, app
}

func validForm() url.Values {
	return url.Values{
		"coupleName":           {"Ana & Bruno"},
		"weddingDate":          {"10.10.2026"},
		"weddingLocation":      {"Fazenda Boa Vista"},
		"adminPassword":        {"segredo"},
		"pixKey":               {"ana@example.com"},
		"pixKeyType":           {"Email"},
		"paymentUrl":           {"https://pay.example.com/ana-bruno"},
		"primaryColor":         {"#aa3366"},
		"loadingTitle":         {"Ana & Bruno"},
		"loadingSubtitle":      {"Carregando..."},
		"showMessagesToPublic": {"true"},
		"geminiApiKey":         {"key-123"},
	}
}

func TestFormFrom_RoundTrip(t *testing.T) {
	settings := seed.DefaultSettings()
	settings.GeminiAPIKey = "k"

	got := seed.DefaultSettings()
	require.NoError(t, FormFrom(settings).Patch().ApplyTo(&got))

	assert.Equal(t, settings, got)
}

func TestGet(t *testing.T) {
	_, app := setup(t)

	resp := handlertest.Get(t, app, Path)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, Template, handlertest.Body(t, resp))

	resp = handlertest.Get(t, app, handler.AdminPath)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get("Location"))
}

func TestPost_Saves(t *testing.T) {
	store, app := setup(t)

	resp := handlertest.PostForm(t, app, Path, validForm())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, handlertest.Body(t, resp), Saved)

	handlertest.Eventually(t, func() bool {
		s := store.Settings()
		return s.CoupleName == "Ana & Bruno" &&
			s.PixKeyType == model.PixKeyEmail &&
			s.ShowMessagesToPublic &&
			s.AdminPassword == "segredo" &&
			s.GeminiAPIKey == "key-123"
	})

	assert.True(t, store.Authenticate("segredo"))
}

func TestPost_UncheckedBoxTurnsBoardPrivate(t *testing.T) {
	store, app := setup(t)

	form := validForm()
	form.Del("showMessagesToPublic")

	resp := handlertest.PostForm(t, app, Path, form)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	handlertest.Eventually(t, func() bool {
		s := store.Settings()
		return s.CoupleName == "Ana & Bruno" && !s.ShowMessagesToPublic
	})
}

func TestPost_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		tag   string
	}{
		{name: "couple name required", field: "coupleName", value: "", tag: "required"},
		{name: "password required", field: "adminPassword", value: "", tag: "required"},
		{name: "unknown pix key type", field: "pixKeyType", value: "Boleto", tag: "oneof"},
		{name: "bad color", field: "primaryColor", value: "pink", tag: "hexcolor"},
		{name: "bad payment url", field: "paymentUrl", value: "not a url", tag: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, app := setup(t)

			form := validForm()
			form.Set(tt.field, tt.value)

			resp := handlertest.PostForm(t, app, Path, form)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, handlertest.Body(t, resp), "failed validation tag '"+tt.tag+"'")
			assert.Equal(t, seed.DefaultSettings().CoupleName, store.Settings().CoupleName)
		})
	}
}

func TestDismissWarning(t *testing.T) {
	_, app := setup(t)

	resp := handlertest.PostForm(t, app, WarningPath, url.Values{})

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get("Location"))
}
