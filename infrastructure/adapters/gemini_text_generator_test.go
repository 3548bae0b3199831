package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/stretchr/testify/require"
)

func sseServer(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "sse", r.URL.Query().Get("alt"))
		require.NotEmpty(t, r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", chunk)
			flusher.Flush()
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testGeminiConfig(url string) *config.GeminiConfig {
	return &config.GeminiConfig{ApiUrl: url, ApiKey: "test-key", Model: "gemini-test"}
}

func TestGeminiTextGenerator_AccumulatesStreamedChunks(t *testing.T) {
	server := sseServer(t, []string{
		`{"candidates": [{"content": {"parts": [{"text": "Hello "}]}}]}`,
		`{"candidates": [{"content": {"parts": [{"text": "world"}]}}]}`,
	})

	generator := NewGeminiTextGenerator(testGeminiConfig(server.URL), NewZerologWrapper())

	text, err := generator.Generate(context.Background(), outbound.GenerateTextRequest{
		Prompt:      "say hello",
		Temperature: 0.7,
		MaxTokens:   100,
	})
	require.NoError(t, err)
	require.Equal(t, "Hello world", text)
}

func TestGeminiTextGenerator_EmptyStreamIsAnError(t *testing.T) {
	server := sseServer(t, []string{
		`{"candidates": []}`,
	})

	generator := NewGeminiTextGenerator(testGeminiConfig(server.URL), NewZerologWrapper())

	_, err := generator.Generate(context.Background(), outbound.GenerateTextRequest{Prompt: "anything"})
	require.ErrorIs(t, err, outbound.ErrEmptyGeneration)
}
