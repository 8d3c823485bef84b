// Package seed holds the compiled-in defaults of the site and the decoders
// that turn stored records into complete ones.
//
// Decoding never writes anything back: a record saved before a field existed
// gets the default in memory and keeps its stored form until the next save.
package seed

import "github.com/GoWeddingSite/GoWeddingSite/internal/model"

// Identities of the system pages. They survive a reset so routes stay stable.
const (
	HomePageID         = "home"
	GiftsPageID        = "gifts-page"
	TransparencyPageID = "transparency-page"
	MessagesPageID     = "messages-page"
)

// DefaultGiftImage is used when a gift is saved without a picture.
const DefaultGiftImage = "https://picsum.photos/400/300"

// DefaultSettings returns the settings a fresh site starts with.
func DefaultSettings() model.Settings {
	return model.Settings{
		CoupleName:           "Jéssica & Felipe",
		WeddingDate:          "02.08.2026",
		WeddingLocation:      "Spazio Villa Regia - Brasília",
		PixKey:               "123.456.789-00",
		PixKeyType:           model.PixKeyCPF,
		PrimaryColor:         "#b08d71",
		AdminPassword:        "123456",
		LoadingTitle:         "Jéssica & Felipe",
		LoadingSubtitle:      "Carregando nossa história...",
		PaymentURL:           "",
		ShowMessagesToPublic: false,
	}
}

// StarterPages returns the four system pages.
func StarterPages() []model.Page {
	return []model.Page{
		{
			ID:        HomePageID,
			Title:     "Nossa História",
			Slug:      model.SlugHome,
			IsSystem:  true,
			IsVisible: true,
			Sections: []model.Section{
				{
					ID:        "hero-1",
					Type:      model.SectionHero,
					Title:     "Jéssica & Felipe",
					Content:   "Save The Date - 02.08.2026",
					ImageURL:  "https://picsum.photos/1200/800",
					ImageURLs: []string{"https://picsum.photos/1200/800"},
				},
				{
					ID:    "text-1",
					Type:  model.SectionText,
					Title: "Como tudo começou",
					Content: "Nossa história começou de forma inesperada e maravilhosa. " +
						"Cada momento juntos tem sido uma aventura...",
				},
			},
		},
		systemPage(GiftsPageID, "Lista de Presentes", model.SlugGifts),
		systemPage(TransparencyPageID, "Transparência", model.SlugTransparency),
		systemPage(MessagesPageID, "Mural de Recados", model.SlugMessages),
	}
}

func systemPage(id, title, slug string) model.Page {
	return model.Page{
		ID:        id,
		Title:     title,
		Slug:      slug,
		IsSystem:  true,
		IsVisible: true,
		Sections:  []model.Section{},
	}
}

// StarterGifts returns the demo gifts recreated by a reset. IDs are left
// empty, the caller assigns fresh ones.
func StarterGifts() []model.Gift {
	return []model.Gift{
		{
			Name:        "Jantar Romântico na Lua de Mel",
			Description: "Ajude-nos a ter uma noite inesquecível.",
			Price:       300,
			ImageURL:    "https://picsum.photos/400/300",
			Status:      model.GiftAvailable,
		},
		{
			Name:        "Cotas para a Casa Nova",
			Description: "Contribuição para nosso novo lar.",
			Price:       150,
			ImageURL:    "https://picsum.photos/401/300",
			Status:      model.GiftAvailable,
		},
	}
}

// IsSystemSlug reports whether slug belongs to one of the built-in pages.
func IsSystemSlug(slug string) bool {
	switch slug {
	case model.SlugHome, model.SlugGifts, model.SlugTransparency, model.SlugMessages:
		return true
	}

	return false
}
