package logout

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/handlertest"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/login"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/session"
)

func TestLogout_DeletesSessionAndCookie(t *testing.T) {
	handlertest.InitSessions(t)

	require.NoError(t, (&session.Data{Authenticated: true}).Write("abc", time.Minute))

	s := &Service{cfg: handlertest.NewConfig()}
	app := handlertest.NewApp(true)
	app.Post(Path, s.Logout)

	req := httptest.NewRequest(http.MethodPost, Path, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "abc"})

	resp := handlertest.Do(t, app, req)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get("Location"))
	assert.Regexp(t, `^session=(;|$)`, resp.Header.Get("Set-Cookie"))

	data := new(session.Data)
	require.NoError(t, data.Read("abc"))
	assert.False(t, data.Authenticated)
}

func TestLogout_WithoutCookie(t *testing.T) {
	handlertest.InitSessions(t)

	s := &Service{cfg: handlertest.NewConfig()}
	app := handlertest.NewApp(false)
	app.Get(Path, s.Logout)

	resp := handlertest.Get(t, app, Path)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get("Location"))
}
