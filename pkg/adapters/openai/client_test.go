package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/pkg/adapters/openai"
)

func TestGenerate(t *testing.T) {
	var gotModel, gotPrompt, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model
		gotPrompt = req.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"Terima kasih!"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := openai.New("sk-test", srv.URL)
	text, err := c.Generate(context.Background(), "gpt-4o-mini", "halo")

	require.NoError(t, err)
	assert.Equal(t, "Terima kasih!", text)
	assert.Equal(t, "gpt-4o-mini", gotModel)
	assert.Equal(t, "halo", gotPrompt)
	assert.Equal(t, "Bearer sk-test", gotAuth)
}

func TestGenerate_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	_, err := openai.New("sk-test", srv.URL).Generate(context.Background(), "m", "p")
	assert.ErrorIs(t, err, openai.ErrNoChoices)

	_, err = openai.New("", srv.URL).Generate(context.Background(), "m", "p")
	assert.ErrorIs(t, err, openai.ErrMissingAPIKey)
}
