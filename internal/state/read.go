package state

import (
	"slices"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() model.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.AppState{
		Settings: s.state.Settings,
		Gifts:    slices.Clone(s.state.Gifts),
		Pages:    clonePages(s.state.Pages),
		Messages: slices.Clone(s.state.Messages),
	}
}

// Settings returns the current settings.
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Settings
}

// Gifts returns the gift list.
func (s *Store) Gifts() []model.Gift {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.state.Gifts)
}

// Gift returns one gift.
func (s *Store) Gift(id string) (model.Gift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := giftIndex(s.state.Gifts, id); i >= 0 {
		return s.state.Gifts[i], true
	}

	return model.Gift{}, false
}

// Pages returns the page list.
func (s *Store) Pages() []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePages(s.state.Pages)
}

// Page returns one page by identity.
func (s *Store) Page(id string) (model.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := pageIndex(s.state.Pages, id); i >= 0 {
		return clonePage(s.state.Pages[i]), true
	}

	return model.Page{}, false
}

// PageBySlug returns the page routed at slug.
func (s *Store) PageBySlug(slug string) (model.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.state.Pages, func(p model.Page) bool { return p.Slug == slug })
	if i < 0 {
		return model.Page{}, false
	}

	return clonePage(s.state.Pages[i]), true
}

// Messages returns the messages, newest first.
func (s *Store) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.state.Messages)
}

func giftIndex(gifts []model.Gift, id string) int {
	return slices.IndexFunc(gifts, func(g model.Gift) bool { return g.ID == id })
}

func pageIndex(pages []model.Page, id string) int {
	return slices.IndexFunc(pages, func(p model.Page) bool { return p.ID == id })
}

func messageIndex(messages []model.Message, id string) int {
	return slices.IndexFunc(messages, func(m model.Message) bool { return m.ID == id })
}

func clonePage(p model.Page) model.Page {
	p.Sections = slices.Clone(p.Sections)
	for i := range p.Sections {
		p.Sections[i].ImageURLs = slices.Clone(p.Sections[i].ImageURLs)
	}

	return p
}

func clonePages(pages []model.Page) []model.Page {
	out := make([]model.Page, len(pages))
	for i, p := range pages {
		out[i] = clonePage(p)
	}

	return out
}
