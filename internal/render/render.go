// Package render turns pages into the views the templates draw.
//
// Everything here is pure: no state is read or written, the caller passes
// the pages and settings it got from the state store.
package render

import (
	"errors"
	"strings"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// ErrPageNotFound is returned when no page has the requested slug.
var ErrPageNotFound = errors.New("page not found")

// FallbackImage is drawn by image-text sections without a picture.
const FallbackImage = "https://picsum.photos/600/800"

// Resolve returns the page whose slug is exactly slug.
func Resolve(pages []model.Page, slug string) (model.Page, error) {
	for _, p := range pages {
		if p.Slug == slug {
			return p, nil
		}
	}

	return model.Page{}, ErrPageNotFound
}

// SectionView is one section ready for the templates.
type SectionView struct {
	ID         string
	Kind       model.SectionType
	Title      string
	Paragraphs []string
	Images     []string
	ImageRight bool
	Carousel   Carousel
}

// PageView is a page ready for the templates.
type PageView struct {
	Title    string
	Slug     string
	Sections []SectionView
}

// View renders the sections of page in order. Unknown section types are
// drawn as text.
func View(page model.Page) PageView {
	v := PageView{
		Title:    page.Title,
		Slug:     page.Slug,
		Sections: make([]SectionView, 0, len(page.Sections)),
	}

	for _, s := range page.Sections {
		v.Sections = append(v.Sections, section(s))
	}

	return v
}

func section(s model.Section) SectionView {
	sv := SectionView{
		ID:         s.ID,
		Kind:       s.Type,
		Title:      s.Title,
		Paragraphs: Paragraphs(s.Content),
	}

	switch s.Type {
	case model.SectionHero:
		sv.Images = s.Images()
		sv.Carousel = NewCarousel(sv.Images)
	case model.SectionImageText:
		sv.ImageRight = s.ImagePosition == model.ImageRight
		sv.Images = []string{FallbackImage}

		if s.ImageURL != "" {
			sv.Images[0] = s.ImageURL
		}
	case model.SectionGallery:
		sv.Images = s.Images()
	default:
		sv.Kind = model.SectionText
	}

	return sv
}

// Paragraphs splits content on line breaks.
func Paragraphs(content string) []string {
	if content == "" {
		return nil
	}

	return strings.Split(content, "\n")
}

// InlineMedia reports whether a greeting is stored as a data URL of an
// audio or video recording rather than a link to the media host.
func InlineMedia(content string) bool {
	lower := strings.ToLower(content)

	return strings.HasPrefix(lower, "data:audio/") || strings.HasPrefix(lower, "data:video/")
}
