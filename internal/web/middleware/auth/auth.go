package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/handler/login"
	"github.com/GoWeddingSite/GoWeddingSite/internal/web/session"
)

// Middleware is a Fiber middleware that checks for organizer authentication.
// Public pages pass through with the Authenticated local set accordingly;
// admin pages without a valid session redirect to the login page.
func Middleware(c *fiber.Ctx) error {
	originalURL := strings.ToLower(c.OriginalURL())
	if strings.HasPrefix(originalURL, "/static") {
		return c.Next()
	}

	authenticated := false

	if loginCookie := c.Cookies(session.CookieName); loginCookie != "" {
		sessData := new(session.Data)
		if err := sessData.Read(loginCookie); err != nil {
			log.Debug().Err(err).Msg("failed to read session")
		}

		authenticated = sessData.Authenticated
	}

	c.Locals(handler.LocalAuthenticated, authenticated)

	if !authenticated && IsAdminPage(c) {
		return c.Redirect(login.Path)
	}

	if authenticated && IsLoginPage(c) {
		return c.Redirect(handler.AdminPath)
	}

	return c.Next()
}

// IsLoginPage checks if the current request is for the login page. Authored
// pages may start with the same letters, so only the exact path matches.
func IsLoginPage(c *fiber.Ctx) bool {
	p := strings.TrimSuffix(strings.ToLower(c.Path()), "/")
	return p == login.Path
}

// IsAdminPage checks if the current request is for the admin panel.
func IsAdminPage(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return p == handler.AdminPath || strings.HasPrefix(p, handler.AdminPath+"/")
}
