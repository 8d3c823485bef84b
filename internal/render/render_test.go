package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
)

func TestResolve(t *testing.T) {
	pages := seed.StarterPages()

	tests := []struct {
		name    string
		slug    string
		wantID  string
		wantErr error
	}{
		{name: "home", slug: "/", wantID: seed.HomePageID},
		{name: "gifts", slug: "/gifts", wantID: seed.GiftsPageID},
		{name: "no prefix match", slug: "/gift", wantErr: ErrPageNotFound},
		{name: "trailing slash", slug: "/gifts/", wantErr: ErrPageNotFound},
		{name: "case sensitive", slug: "/Gifts", wantErr: ErrPageNotFound},
		{name: "empty", slug: "", wantErr: ErrPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(pages, tt.slug)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestResolve_NoPages(t *testing.T) {
	_, err := Resolve(nil, "/")
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestView(t *testing.T) {
	page := model.Page{
		Title: "Nossa História",
		Slug:  "/",
		Sections: []model.Section{
			{ID: "h", Type: model.SectionHero, Title: "A & B", ImageURLs: []string{"1", "2", "3"}},
			{ID: "t", Type: model.SectionText, Content: "um\ndois"},
			{ID: "i", Type: model.SectionImageText, ImagePosition: model.ImageRight},
			{ID: "g", Type: model.SectionGallery, ImageURLs: []string{"a", "b"}},
			{ID: "x", Type: "timeline", Content: "texto"},
		},
	}

	v := View(page)
	require.Len(t, v.Sections, 5)

	ids := make([]string, 0, len(v.Sections))
	for _, s := range v.Sections {
		ids = append(ids, s.ID)
	}

	assert.Equal(t, []string{"h", "t", "i", "g", "x"}, ids)

	assert.True(t, v.Sections[0].Carousel.Rotates())
	assert.Equal(t, []string{"um", "dois"}, v.Sections[1].Paragraphs)
	assert.True(t, v.Sections[2].ImageRight)
	assert.Equal(t, []string{FallbackImage}, v.Sections[2].Images)
	assert.Equal(t, []string{"a", "b"}, v.Sections[3].Images)

	assert.Equal(t, model.SectionText, v.Sections[4].Kind)
	assert.Equal(t, []string{"texto"}, v.Sections[4].Paragraphs)
}

func TestView_HeroSingleImage(t *testing.T) {
	v := View(model.Page{Sections: []model.Section{{Type: model.SectionHero, ImageURL: "only"}}})

	assert.Equal(t, []string{"only"}, v.Sections[0].Images)
	assert.False(t, v.Sections[0].Carousel.Rotates())
}

func TestPublicNavigation(t *testing.T) {
	pages := seed.StarterPages()
	pages = append(pages,
		model.Page{ID: "a", Title: "Padrinhos", Slug: "/padrinhos", IsVisible: true},
		model.Page{ID: "b", Title: "Rascunho", Slug: "/rascunho", IsVisible: false},
	)

	slugs := func(links []Link) []string {
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, l.Slug)
		}

		return out
	}

	settings := seed.DefaultSettings()

	assert.Equal(t, []string{"/gifts", "/transparency", "/padrinhos"},
		slugs(PublicNavigation(pages, settings, false)))
	assert.Equal(t, []string{"/gifts", "/transparency", "/messages", "/padrinhos"},
		slugs(PublicNavigation(pages, settings, true)))

	settings.ShowMessagesToPublic = true
	assert.Equal(t, []string{"/gifts", "/transparency", "/messages", "/padrinhos"},
		slugs(PublicNavigation(pages, settings, false)))

	assert.Equal(t, "gift", PublicNavigation(pages, settings, false)[0].Icon)
}

func TestSummarize(t *testing.T) {
	gifts := []model.Gift{
		{Name: "Jantar Romântico na Lua de Mel", Price: 300, PurchasedCount: 2},
		{Name: "Cotas", Price: 150, PurchasedCount: 3},
		{Name: "A", Price: 10},
		{Name: "B", Price: 10, PurchasedCount: 1},
		{Name: "C", Price: 10, PurchasedCount: 1},
		{Name: "D", Price: 10, PurchasedCount: 1},
	}

	sum := Summarize(gifts)

	assert.Equal(t, 8, sum.TotalGifts)
	assert.InDelta(t, 600+450+30, sum.TotalValue, 0.001)

	require.Len(t, sum.Top, 5)
	assert.Equal(t, Bar{Label: "Cotas", Count: 3}, sum.Top[0])
	assert.Equal(t, Bar{Label: "Jantar Romântic...", Count: 2}, sum.Top[1])
	assert.Equal(t, "B", sum.Top[2].Label)
	assert.Equal(t, "D", sum.Top[4].Label)

	// input order is untouched
	assert.Equal(t, "A", gifts[2].Name)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)

	assert.Zero(t, sum.TotalGifts)
	assert.Zero(t, sum.TotalValue)
	assert.Empty(t, sum.Top)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "exatamente 15 c", Truncate("exatamente 15 c"))
	assert.Equal(t, strings.Repeat("ç", 15)+"...", Truncate(strings.Repeat("ç", 16)))
}

func TestInlineMedia(t *testing.T) {
	assert.True(t, InlineMedia("data:audio/webm;base64,aGk="))
	assert.True(t, InlineMedia("data:video/mp4;base64,aGk="))
	assert.False(t, InlineMedia("data:text/html;base64,PHNjcmlwdD4="))
	assert.False(t, InlineMedia("https://res.example.com/a.webm"))
}
