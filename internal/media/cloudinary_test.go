package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloudinaryServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()

	var seen http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		seen = *r

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, &seen
}

func TestCloudinary_Upload(t *testing.T) {
	srv, seen := cloudinaryServer(t, http.StatusOK, `{"secure_url":"https://res.example.com/v1/a.webm"}`)

	c := NewCloudinary(CloudinaryConfig{CloudName: "demo", UploadPreset: "ml_default", Endpoint: srv.URL + "/"})

	url, err := c.Upload(context.Background(), Upload{Data: []byte("webm"), MIMEType: "video/webm"})
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/v1/a.webm", url)

	assert.Equal(t, "/v1_1/demo/auto/upload", seen.URL.Path)
	assert.Equal(t, "ml_default", seen.MultipartForm.Value["upload_preset"][0])
	assert.Equal(t, Tag, seen.MultipartForm.Value["tags"][0])
	require.Len(t, seen.MultipartForm.File["file"], 1)
	assert.Equal(t, "recado.webm", seen.MultipartForm.File["file"][0].Filename)
}

func TestCloudinary_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		wantMsg string
	}{
		{
			name:   "signed preset",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Unknown API key"}}`,
			want:   ErrPresetMisconfigured,
		},
		{
			name:    "provider message is kept",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"Upload preset not found"}}`,
			wantMsg: "Upload preset not found",
		},
		{
			name:    "no structured message",
			status:  http.StatusBadGateway,
			body:    `bad gateway`,
			wantMsg: "Erro no upload para o Cloudinary (HTTP 502)",
		},
		{
			name:    "ok without url",
			status:  http.StatusOK,
			body:    `{}`,
			wantMsg: "resposta sem secure_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := cloudinaryServer(t, tt.status, tt.body)
			c := NewCloudinary(CloudinaryConfig{CloudName: "demo", UploadPreset: "p", Endpoint: srv.URL})

			_, err := c.Upload(context.Background(), Upload{Data: []byte("x"), MIMEType: "audio/webm"})
			require.Error(t, err)

			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				assert.NotContains(t, err.Error(), unknownAPIKey)

				return
			}

			var upErr *UploadError
			require.ErrorAs(t, err, &upErr)
			assert.Equal(t, tt.wantMsg, upErr.Error())
		})
	}
}

func TestCloudinary_EmptyRecording(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	_, err := NewCloudinary(CloudinaryConfig{Endpoint: srv.URL}).Upload(context.Background(), Upload{})
	require.ErrorIs(t, err, ErrEmptyRecording)
	assert.False(t, called)
}
