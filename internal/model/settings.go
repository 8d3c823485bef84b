package model

// PixKeyType is the kind of key used for PIX payments.
type PixKeyType string

// Supported PIX key types.
const (
	PixKeyCPF    PixKeyType = "CPF"
	PixKeyCNPJ   PixKeyType = "CNPJ"
	PixKeyEmail  PixKeyType = "Email"
	PixKeyPhone  PixKeyType = "Phone"
	PixKeyRandom PixKeyType = "Random"
)

// PixKeyTypes lists the key types in the order the admin form offers them.
var PixKeyTypes = []PixKeyType{PixKeyCPF, PixKeyCNPJ, PixKeyEmail, PixKeyPhone, PixKeyRandom}

// Valid reports whether t is one of the supported key types.
func (t PixKeyType) Valid() bool {
	for _, k := range PixKeyTypes {
		if k == t {
			return true
		}
	}

	return false
}

// Settings is the site wide singleton.
type Settings struct {
	CoupleName           string     `json:"coupleName"`
	WeddingDate          string     `json:"weddingDate"`
	WeddingLocation      string     `json:"weddingLocation"`
	PixKey               string     `json:"pixKey"`
	PixKeyType           PixKeyType `json:"pixKeyType"`
	PrimaryColor         string     `json:"primaryColor"`
	AdminPassword        string     `json:"adminPassword,omitempty"`
	LoadingTitle         string     `json:"loadingTitle,omitempty"`
	LoadingSubtitle      string     `json:"loadingSubtitle,omitempty"`
	PaymentURL           string     `json:"paymentUrl"`
	ShowMessagesToPublic bool       `json:"showMessagesToPublic"`
	GeminiAPIKey         string     `json:"geminiApiKey,omitempty"`
}

// SettingsPatch holds a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	CoupleName           *string     `json:"coupleName,omitempty"`
	WeddingDate          *string     `json:"weddingDate,omitempty"`
	WeddingLocation      *string     `json:"weddingLocation,omitempty"`
	PixKey               *string     `json:"pixKey,omitempty"`
	PixKeyType           *PixKeyType `json:"pixKeyType,omitempty"`
	PrimaryColor         *string     `json:"primaryColor,omitempty"`
	AdminPassword        *string     `json:"adminPassword,omitempty"`
	LoadingTitle         *string     `json:"loadingTitle,omitempty"`
	LoadingSubtitle      *string     `json:"loadingSubtitle,omitempty"`
	PaymentURL           *string     `json:"paymentUrl,omitempty"`
	ShowMessagesToPublic *bool       `json:"showMessagesToPublic,omitempty"`
	GeminiAPIKey         *string     `json:"geminiApiKey,omitempty"`
}

// Fields returns the set fields keyed by their document names.
func (p SettingsPatch) Fields() (map[string]any, error) {
	return fields(p)
}

// ApplyTo merges the set fields into s.
func (p SettingsPatch) ApplyTo(s *Settings) error {
	return merge(s, p)
}
