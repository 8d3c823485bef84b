// Package auth provides the organizer authentication middleware.
//
// The middleware reads the session cookie of every request and stores the
// result under handler.LocalAuthenticated, so public pages can show the
// organizer extras (message board, warning banner, admin link). Requests for
// the admin panel without a valid session are redirected to the login page,
// and a logged in organizer opening the login page goes straight to the
// panel.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
//
// Static files are passed through without touching the session storage.
package auth
