// Package navigation provides the per request chrome of a page: title,
// public menu, admin tabs and breadcrumbs.
package navigation

import (
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/render"
)

// Admin sections.
const (
	SectionPublic = "public"
	SectionAdmin  = "admin"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Tab is one entry of the admin panel menu.
type Tab struct {
	Title string
	URL   string
	Page  string
}

// AdminTabs lists the admin panel sections in display order.
var AdminTabs = []Tab{
	{Title: "Geral", URL: "/admin/settings", Page: "settings"},
	{Title: "Presentes", URL: "/admin/gifts", Page: "gifts"},
	{Title: "Páginas", URL: "/admin/pages", Page: "pages"},
	{Title: "Recados", URL: "/admin/messages", Page: "messages"},
	{Title: "Resetar", URL: "/admin/reset", Page: "reset"},
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string

	CoupleName    string
	WeddingDate   string
	PrimaryColor  string
	Menu          []render.Link
	Tabs          []Tab
	Authenticated bool
	Warning       string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// WithSite fills the site chrome from the current settings and pages. The
// admin tabs and the store warning are only carried for organizers.
func (c *Context) WithSite(settings model.Settings, pages []model.Page, authenticated bool, warning string) *Context {
	c.CoupleName = settings.CoupleName
	c.WeddingDate = settings.WeddingDate
	c.PrimaryColor = settings.PrimaryColor
	c.Menu = render.PublicNavigation(pages, settings, authenticated)
	c.Authenticated = authenticated

	if authenticated {
		c.Tabs = AdminTabs
		c.Warning = warning
	}

	return c
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
