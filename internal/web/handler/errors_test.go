package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoWeddingSite/GoWeddingSite/internal/media"
	"github.com/GoWeddingSite/GoWeddingSite/internal/purchase"
)

func TestMessage(t *testing.T) {
	errLocal := errors.New("local failure")
	local := Messages{errLocal: "Falha local."}

	assert.Empty(t, Message(nil, local))
	assert.Equal(t, "Falha local.", Message(fmt.Errorf("wrapped: %w", errLocal), local))
	assert.Equal(t, shared[purchase.ErrBuyerNameRequired], Message(purchase.ErrBuyerNameRequired, nil))
	assert.Equal(t, shared[media.ErrEmptyRecording], Message(fmt.Errorf("upload: %w", media.ErrEmptyRecording), local))
	assert.Equal(t, "boom", Message(errors.New("boom"), local))
}

func TestMessage_SharedSentinelsArePortuguese(t *testing.T) {
	for sentinel, msg := range shared {
		assert.NotEqual(t, sentinel.Error(), msg)
		assert.Regexp(t, `^[A-ZÀ-Ú]`, msg)
	}
}
