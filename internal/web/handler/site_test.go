package handler

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessages(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Color string `validate:"hexcolor"`
	}

	err := validator.New().Struct(form{Color: "red"})

	assert.Equal(t, []string{
		"Field 'Name' failed validation tag 'required'",
		"Field 'Color' failed validation tag 'hexcolor'",
	}, ValidationMessages(err))

	assert.Equal(t, []string{"boom"}, ValidationMessages(errors.New("boom")))
}

func TestCheck(t *testing.T) {
	assert.ErrorIs(t, Check(nil, nil, Deps{}), ErrNilDeps)
}
