package model

// GiftStatus is the payment state of a gift.
type GiftStatus string

// Gift lifecycle: available -> pending -> confirmed, or available -> confirmed.
const (
	GiftAvailable GiftStatus = "available"
	GiftPending   GiftStatus = "pending"
	GiftConfirmed GiftStatus = "confirmed"
)

// Gift is one entry of the registry.
type Gift struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	ImageURL       string     `json:"imageUrl"`
	PurchasedCount int        `json:"purchasedCount"`
	Status         GiftStatus `json:"status"`
	BuyerName      string     `json:"buyerName,omitempty"`
}

// GiftPatch holds a partial gift update. Nil fields are left untouched.
type GiftPatch struct {
	Name           *string     `json:"name,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Price          *float64    `json:"price,omitempty"`
	ImageURL       *string     `json:"imageUrl,omitempty"`
	PurchasedCount *int        `json:"purchasedCount,omitempty"`
	Status         *GiftStatus `json:"status,omitempty"`
	BuyerName      *string     `json:"buyerName,omitempty"`
}

// Fields returns the set fields keyed by their document names.
func (p GiftPatch) Fields() (map[string]any, error) {
	return fields(p)
}

// ApplyTo merges the set fields into g.
func (p GiftPatch) ApplyTo(g *Gift) error {
	return merge(g, p)
}
