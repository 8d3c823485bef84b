package handler

import (
	"errors"

	"github.com/GoWeddingSite/GoWeddingSite/internal/generate"
	"github.com/GoWeddingSite/GoWeddingSite/internal/media"
	"github.com/GoWeddingSite/GoWeddingSite/internal/purchase"
)

// Messages maps sentinel errors to the text shown on the page.
type Messages map[error]string

// shared covers the errors of the packages handlers call into.
var shared = Messages{
	purchase.ErrBuyerNameRequired: "Por favor, digite seu nome para que os noivos saibam quem enviou!",
	purchase.ErrGiftNotFound:      "Presente não encontrado.",
	purchase.ErrGiftUnavailable:   "Este presente já foi confirmado.",
	purchase.ErrPartialSubmission: "Recado salvo, mas o presente não foi atualizado. Avise os noivos.",
	media.ErrEmptyRecording:       "O arquivo gravado está vazio (0 bytes). Tente gravar novamente.",
	media.ErrNoProvider:           "Nenhum serviço de mídia configurado para receber gravações.",
	media.ErrPresetMisconfigured: "Erro de Configuração: O Preset do Cloudinary parece estar como 'Signed'. " +
		"Mude para 'Unsigned' no painel do Cloudinary.",
	generate.ErrMissingAPIKey: "Por favor, insira uma API Key do Google Gemini válida.",
	generate.ErrNoContent:     "Nenhum conteúdo foi gerado. Tente outro tema.",
}

// Message returns the text shown for err. The handler's own table is looked
// up first, then the shared one; an error found in neither shows its own
// text.
func Message(err error, local Messages) string {
	if err == nil {
		return ""
	}

	for _, table := range []Messages{local, shared} {
		for sentinel, msg := range table {
			if errors.Is(err, sentinel) {
				return msg
			}
		}
	}

	return err.Error()
}
