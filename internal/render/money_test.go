package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{150, "150,00"},
		{99.9, "99,90"},
		{1234.5, "1.234,50"},
		{1000000, "1.000.000,00"},
		{-42.1, "-42,10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "%v", tt.in)
	}
}
