// Package generate writes new pages with a language model.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

var (
	// ErrMissingAPIKey is returned when no credential is configured.
	ErrMissingAPIKey = errors.New("api key is missing")

	// ErrEmptyTopic is returned when the topic is blank.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrNoContent is returned when the model answered without a page.
	ErrNoContent = errors.New("no content generated")
)

// Request asks for one page about Topic. APIKey overrides the configured key.
type Request struct {
	Topic    string
	Existing []model.Page
	APIKey   string
}

// Generator returns a page draft. Drafts must go through Prepare before
// they are stored.
type Generator interface {
	Generate(ctx context.Context, req Request) (model.Page, error)
}

// Prepare makes a generated draft safe to store next to existing pages:
// the page is never a system page, is visible, has a slug starting with "/"
// that no other page uses, and every section has an identity.
func Prepare(draft model.Page, existing []model.Page, now time.Time) model.Page {
	p := draft
	p.ID = ""
	p.IsSystem = false
	p.IsVisible = true

	p.Slug = strings.TrimSpace(p.Slug)
	if !strings.HasPrefix(p.Slug, "/") {
		p.Slug = "/" + p.Slug
	}

	if slugTaken(existing, p.Slug) {
		p.Slug = fmt.Sprintf("%s-%d", p.Slug, now.UnixMilli())
	}

	sections := make([]model.Section, 0, len(p.Sections))
	for _, s := range p.Sections {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}

		sections = append(sections, s)
	}

	p.Sections = sections

	return p
}

func slugTaken(pages []model.Page, slug string) bool {
	for _, p := range pages {
		if p.Slug == slug {
			return true
		}
	}

	return false
}

// pageContext is the summary of an existing page given to the model.
type pageContext struct {
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
}

func summarize(pages []model.Page) []pageContext {
	out := make([]pageContext, 0, len(pages))

	for _, p := range pages {
		pc := pageContext{Title: p.Title, Sections: make([]string, 0, len(p.Sections))}
		for _, s := range p.Sections {
			pc.Sections = append(pc.Sections, s.Content)
		}

		out = append(out, pc)
	}

	return out
}
