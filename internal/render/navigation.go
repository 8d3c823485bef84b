package render

import "github.com/GoWeddingSite/GoWeddingSite/internal/model"

// Link is one entry of the public menu.
type Link struct {
	Title string
	Slug  string
	Icon  string
}

// PublicNavigation returns the menu of the public site: visible pages in
// stored order, without the home page. The message board is listed only
// when it is public or an organizer is logged in.
func PublicNavigation(pages []model.Page, settings model.Settings, authenticated bool) []Link {
	links := make([]Link, 0, len(pages))

	for _, p := range pages {
		if !p.IsVisible || p.Slug == model.SlugHome {
			continue
		}

		if p.Slug == model.SlugMessages && !settings.ShowMessagesToPublic && !authenticated {
			continue
		}

		links = append(links, Link{Title: p.Title, Slug: p.Slug, Icon: icon(p.Slug)})
	}

	return links
}

// MessagesVisible reports whether the message board may be shown.
func MessagesVisible(settings model.Settings, authenticated bool) bool {
	return settings.ShowMessagesToPublic || authenticated
}

func icon(slug string) string {
	switch slug {
	case model.SlugGifts:
		return "gift"
	case model.SlugTransparency:
		return "info"
	case model.SlugMessages:
		return "message"
	}

	return "page"
}
