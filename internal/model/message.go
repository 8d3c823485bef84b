package model

import "time"

// MediaType is the kind of recording attached to a message.
type MediaType string

// Media types.
const (
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
)

// Message is a guest greeting, usually left while choosing a gift.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Type      MediaType `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	GiftID    string    `json:"giftId,omitempty"`
}

// AppState is the whole site as a single document, the shape of the local
// fallback blob.
type AppState struct {
	Settings Settings  `json:"settings"`
	Gifts    []Gift    `json:"gifts"`
	Pages    []Page    `json:"pages"`
	Messages []Message `json:"messages"`
}
