package seed

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// DecodeSettings decodes a stored settings record on top of the defaults.
func DecodeSettings(raw []byte) (model.Settings, error) {
	s := DefaultSettings()
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.Settings{}, errors.Wrap(err, "decode settings")
	}

	return s, nil
}

// DecodeGift decodes a stored gift. Records without a status are available.
func DecodeGift(id string, raw []byte) (model.Gift, error) {
	g := model.Gift{Status: model.GiftAvailable}
	if err := json.Unmarshal(raw, &g); err != nil {
		return model.Gift{}, errors.Wrapf(err, "decode gift %s", id)
	}

	return normalizeGift(id, g), nil
}

func normalizeGift(id string, g model.Gift) model.Gift {
	if id != "" {
		g.ID = id
	}

	if g.Status == "" {
		g.Status = model.GiftAvailable
	}

	if g.PurchasedCount < 0 {
		g.PurchasedCount = 0
	}

	return g
}

// DecodePage decodes a stored page. Pages saved before the visibility flag
// existed are visible, hero sections saved before carousels existed get
// their single image as a one element list.
func DecodePage(id string, raw []byte) (model.Page, error) {
	p := model.Page{IsVisible: true}
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Page{}, errors.Wrapf(err, "decode page %s", id)
	}

	return normalizePage(id, p), nil
}

func normalizePage(id string, p model.Page) model.Page {
	if id != "" {
		p.ID = id
	}

	if p.Sections == nil {
		p.Sections = []model.Section{}
	}

	for i, sec := range p.Sections {
		if sec.Type == model.SectionHero && len(sec.ImageURLs) == 0 && sec.ImageURL != "" {
			p.Sections[i].ImageURLs = []string{sec.ImageURL}
		}
	}

	return p
}

// DecodeMessage decodes a stored message.
func DecodeMessage(id string, raw []byte) (model.Message, error) {
	m := model.Message{Type: model.MediaAudio}
	if err := json.Unmarshal(raw, &m); err != nil {
		return model.Message{}, errors.Wrapf(err, "decode message %s", id)
	}

	if id != "" {
		m.ID = id
	}

	return m, nil
}

// DecodeState decodes a whole state blob. An empty blob yields the defaults
// with the system pages and no gifts.
func DecodeState(raw []byte) (model.AppState, error) {
	st := model.AppState{
		Settings: DefaultSettings(),
		Gifts:    []model.Gift{},
		Pages:    StarterPages(),
		Messages: []model.Message{},
	}

	if len(raw) == 0 {
		return st, nil
	}

	var stored struct {
		Settings json.RawMessage   `json:"settings"`
		Gifts    []json.RawMessage `json:"gifts"`
		Pages    []json.RawMessage `json:"pages"`
		Messages []json.RawMessage `json:"messages"`
	}

	if err := json.Unmarshal(raw, &stored); err != nil {
		return model.AppState{}, errors.Wrap(err, "decode state")
	}

	var err error

	if len(stored.Settings) > 0 {
		if st.Settings, err = DecodeSettings(stored.Settings); err != nil {
			return model.AppState{}, err
		}
	}

	for _, r := range stored.Gifts {
		g, decErr := DecodeGift("", r)
		if decErr != nil {
			return model.AppState{}, decErr
		}

		st.Gifts = append(st.Gifts, g)
	}

	if stored.Pages != nil {
		st.Pages = make([]model.Page, 0, len(stored.Pages))

		for _, r := range stored.Pages {
			p, decErr := DecodePage("", r)
			if decErr != nil {
				return model.AppState{}, decErr
			}

			st.Pages = append(st.Pages, p)
		}
	}

	for _, r := range stored.Messages {
		m, decErr := DecodeMessage("", r)
		if decErr != nil {
			return model.AppState{}, decErr
		}

		st.Messages = append(st.Messages, m)
	}

	return st, nil
}
