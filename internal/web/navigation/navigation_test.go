package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Presentes", "public", "gifts")

	assert.Equal(t, "Presentes", ctx.PageTitle)
	assert.Equal(t, "public", ctx.ActiveSection)
	assert.Equal(t, "gifts", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb(t *testing.T) {
	ctx := NewContext("Presentes", "public", "gifts")

	// Add first breadcrumb
	ctx.AddBreadcrumb("Home", "/", false)
	assert.Len(t, ctx.Breadcrumbs, 1)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/", ctx.Breadcrumbs[0].URL)
	assert.False(t, ctx.Breadcrumbs[0].Active)

	// Add second breadcrumb
	ctx.AddBreadcrumb("Presentes", "/admin/gifts", false)
	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Presentes", ctx.Breadcrumbs[1].Title)

	// Add active breadcrumb
	ctx.AddBreadcrumb("Editar", "/admin/gifts/g1", true)
	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Presentes", "public", "gifts").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Settings", "/settings", false).
		AddBreadcrumb("Current", "/settings/current", true)

	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "Settings", ctx.Breadcrumbs[1].Title)
	assert.Equal(t, "Current", ctx.Breadcrumbs[2].Title)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Test Page", "admin", "gifts")

	// Should return true when both section and page match
	assert.True(t, ctx.IsActive("admin", "gifts"))

	// Should return false when section doesn't match
	assert.False(t, ctx.IsActive("public", "gifts"))

	// Should return false when page doesn't match
	assert.False(t, ctx.IsActive("admin", "pages"))

	// Should return false when neither match
	assert.False(t, ctx.IsActive("public", "home"))
}

func TestContext_IsSectionActive(t *testing.T) {
	ctx := NewContext("Test Page", "admin", "gifts")

	// Should return true when section matches
	assert.True(t, ctx.IsSectionActive("admin"))

	// Should return false when section doesn't match
	assert.False(t, ctx.IsSectionActive("public"))
}

func TestContext_WithSite_Public(t *testing.T) {
	settings := seed.DefaultSettings()
	settings.ShowMessagesToPublic = false

	ctx := NewContext("Início", SectionPublic, "home").
		WithSite(settings, seed.StarterPages(), false, "not persisted")

	assert.Equal(t, settings.CoupleName, ctx.CoupleName)
	assert.Equal(t, settings.PrimaryColor, ctx.PrimaryColor)
	assert.False(t, ctx.Authenticated)
	assert.Empty(t, ctx.Tabs)
	assert.Empty(t, ctx.Warning, "the warning is only shown to organizers")

	for _, l := range ctx.Menu {
		assert.NotEqual(t, model.SlugHome, l.Slug)
		assert.NotEqual(t, model.SlugMessages, l.Slug)
	}
}

func TestContext_WithSite_Organizer(t *testing.T) {
	settings := seed.DefaultSettings()
	settings.ShowMessagesToPublic = false

	ctx := NewContext("Painel", SectionAdmin, "gifts").
		WithSite(settings, seed.StarterPages(), true, "not persisted")

	assert.True(t, ctx.Authenticated)
	assert.Equal(t, AdminTabs, ctx.Tabs)
	assert.Equal(t, "not persisted", ctx.Warning)

	slugs := make([]string, 0, len(ctx.Menu))
	for _, l := range ctx.Menu {
		slugs = append(slugs, l.Slug)
	}

	assert.Contains(t, slugs, model.SlugMessages)
}

func TestBreadcrumbItem(t *testing.T) {
	item := BreadcrumbItem{
		Title:  "Presentes",
		URL:    "/admin/gifts",
		Active: true,
	}

	assert.Equal(t, "Presentes", item.Title)
	assert.Equal(t, "/admin/gifts", item.URL)
	assert.True(t, item.Active)
}
