package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// AdminLayout wraps the admin panel pages.
	AdminLayout = "layouts/admin"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the path of a route group itself.
	RouterRootPath = "/"

	// AdminPath prefixes every organizer route.
	AdminPath = "/admin"

	// LocalAuthenticated is the fiber.Locals key set by the auth middleware.
	LocalAuthenticated = "Authenticated"

	// ErrNilACDFatalLogMsg is used if app or cfg or store var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or store is nil"
)
