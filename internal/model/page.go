package model

// SectionType tags the renderer used for a section.
type SectionType string

// Known section types.
const (
	SectionHero      SectionType = "hero"
	SectionText      SectionType = "text"
	SectionImageText SectionType = "image-text"
	SectionGallery   SectionType = "gallery"
)

// ImagePosition places the picture of an image-text section.
type ImagePosition string

// Image positions.
const (
	ImageLeft  ImagePosition = "left"
	ImageRight ImagePosition = "right"
)

// Fixed slugs of the system pages.
const (
	SlugHome         = "/"
	SlugGifts        = "/gifts"
	SlugTransparency = "/transparency"
	SlugMessages     = "/messages"
)

// Section is a typed content block of a page.
type Section struct {
	ID            string        `json:"id"`
	Type          SectionType   `json:"type"`
	Title         string        `json:"title,omitempty"`
	Content       string        `json:"content,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	ImageURLs     []string      `json:"imageUrls,omitempty"`
	ImagePosition ImagePosition `json:"imagePosition,omitempty"`
}

// Images returns the ordered image list of the section. A single ImageURL is
// a one element list.
func (s Section) Images() []string {
	if len(s.ImageURLs) > 0 {
		return s.ImageURLs
	}

	if s.ImageURL != "" {
		return []string{s.ImageURL}
	}

	return nil
}

// Page is a routable page of the site.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	IsSystem  bool      `json:"isSystem"`
	IsVisible bool      `json:"isVisible"`
	Sections  []Section `json:"sections"`
}

// PagePatch holds a partial page update. Nil fields are left untouched;
// Sections replaces the whole list.
type PagePatch struct {
	Title     *string    `json:"title,omitempty"`
	Slug      *string    `json:"slug,omitempty"`
	IsVisible *bool      `json:"isVisible,omitempty"`
	Sections  *[]Section `json:"sections,omitempty"`
}

// Fields returns the set fields keyed by their document names.
func (p PagePatch) Fields() (map[string]any, error) {
	return fields(p)
}

// ApplyTo merges the set fields into pg.
func (p PagePatch) ApplyTo(pg *Page) error {
	return merge(pg, p)
}
