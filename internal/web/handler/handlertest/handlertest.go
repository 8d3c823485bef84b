// Package handlertest holds the fixtures shared by the handler tests.
package handlertest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/localstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
	"github.com/GoWeddingSite/GoWeddingSite/internal/state"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/session"
)

// NoOpViews is a minimal Fiber Views engine. It writes the template name
// followed by the "Error" and "Success" entries of the data, so tests can
// assert on what a handler chose to render.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	m, ok := data.(fiber.Map)
	if !ok {
		return nil
	}

	for _, key := range []string{"Error", "Success"} {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				_, _ = fmt.Fprintf(w, "\n%s: %s", key, v)
			}
		case []string:
			_, _ = fmt.Fprintf(w, "\n%s: %s", key, strings.Join(v, "; "))
		}
	}

	return nil
}

// NewConfig returns the configuration the handlers are tested with.
func NewConfig() *config.Config {
	return &config.Config{
		Title: "Casamento",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

// NewStore returns an opened state store on an in-memory backend.
func NewStore(t *testing.T, opts ...state.Option) (*state.Store, *docstore.Memory) {
	t.Helper()

	backend := docstore.NewMemory()
	store := state.New(backend, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, store.Open(ctx))

	// let the default settings and system pages reach the backend first
	require.Eventually(t, func() bool {
		return len(backend.Documents(docstore.CollectionSettings)) == 1 &&
			len(backend.Documents(docstore.CollectionPages)) == len(seed.StarterPages())
	}, 5*time.Second, 10*time.Millisecond)

	t.Cleanup(func() {
		store.Close()
		_ = backend.Close()
	})

	return store, backend
}

// Eventually waits for cond, for state written through the store to come
// back from the backend.
func Eventually(t *testing.T, cond func() bool, msgAndArgs ...interface{}) {
	t.Helper()

	require.Eventually(t, cond, 5*time.Second, 10*time.Millisecond, msgAndArgs...)
}

// InitSessions installs a fresh in-memory session storage.
func InitSessions(t *testing.T) {
	t.Helper()

	db, err := localstore.OpenDB("")
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	session.Init(localstore.NewSessionStorage(db))
}

// NewApp returns a fiber app rendering with NoOpViews. With authenticated
// set, every request is treated as coming from a logged in organizer.
func NewApp(authenticated bool) *fiber.App {
	app := fiber.New(fiber.Config{Views: NoOpViews{}})

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(handler.LocalAuthenticated, authenticated)
		return c.Next()
	})

	return app
}

// Get performs a GET request.
func Get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// PostForm performs a url encoded POST request.
func PostForm(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return Do(t, app, req)
}

// Do performs req.
func Do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Body reads the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}
