package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsPatch_FieldsOnlySet(t *testing.T) {
	patch := SettingsPatch{
		CoupleName:           Ptr("Ana & Bruno"),
		ShowMessagesToPublic: Ptr(false),
	}

	f, err := patch.Fields()
	require.NoError(t, err)

	assert.Len(t, f, 2)
	assert.Equal(t, "Ana & Bruno", f["coupleName"])
	assert.Equal(t, false, f["showMessagesToPublic"])
}

func TestSettingsPatch_ApplyTo(t *testing.T) {
	s := Settings{CoupleName: "A", PixKeyType: PixKeyCPF, PaymentURL: "https://pay"}

	err := SettingsPatch{PixKeyType: Ptr(PixKeyEmail), PaymentURL: Ptr("")}.ApplyTo(&s)
	require.NoError(t, err)

	assert.Equal(t, "A", s.CoupleName)
	assert.Equal(t, PixKeyEmail, s.PixKeyType)
	assert.Empty(t, s.PaymentURL)
}

func TestGiftPatch_ZeroValuesAreApplied(t *testing.T) {
	g := Gift{ID: "g1", Name: "Jantar", Price: 300, PurchasedCount: 2, Status: GiftConfirmed, BuyerName: "Ana"}

	err := GiftPatch{Price: Ptr(0.0), Status: Ptr(GiftAvailable), BuyerName: Ptr("")}.ApplyTo(&g)
	require.NoError(t, err)

	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, "Jantar", g.Name)
	assert.InDelta(t, 0.0, g.Price, 0.0001)
	assert.Equal(t, 2, g.PurchasedCount)
	assert.Equal(t, GiftAvailable, g.Status)
	assert.Empty(t, g.BuyerName)
}

func TestPagePatch_ReplacesSections(t *testing.T) {
	p := Page{ID: "p", Sections: []Section{{ID: "a"}, {ID: "b"}}}

	err := PagePatch{Sections: &[]Section{{ID: "c"}}}.ApplyTo(&p)
	require.NoError(t, err)

	require.Len(t, p.Sections, 1)
	assert.Equal(t, "c", p.Sections[0].ID)
}

func TestSection_Images(t *testing.T) {
	assert.Nil(t, Section{}.Images())
	assert.Equal(t, []string{"a"}, Section{ImageURL: "a"}.Images())
	assert.Equal(t, []string{"b", "c"}, Section{ImageURL: "a", ImageURLs: []string{"b", "c"}}.Images())
}

func TestPixKeyType_Valid(t *testing.T) {
	assert.True(t, PixKeyRandom.Valid())
	assert.False(t, PixKeyType("IBAN").Valid())
}

func TestMergeFields(t *testing.T) {
	out, err := MergeFields([]byte(`{"name":"a","price":10}`), map[string]any{"price": 20, "status": "pending"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","price":20,"status":"pending"}`, string(out))

	out, err = MergeFields(nil, map[string]any{"x": true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":true}`, string(out))

	_, err = MergeFields([]byte(`not json`), nil)
	assert.Error(t, err)
}
