package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRequest_ApplyDefaults(t *testing.T) {
	req := GenerateRequest{Topic: "the history of radio"}
	req.ApplyDefaults()

	require.Equal(t, "Solo Talk Show", req.Style)
	require.Equal(t, 5, req.DurationMinutes)
	require.Equal(t, "en", req.Language)
}

func TestGenerateRequest_DefaultsKeepExplicitValues(t *testing.T) {
	req := GenerateRequest{Topic: "topic", Style: "Debate", DurationMinutes: 10, Language: "zh"}
	req.ApplyDefaults()

	require.Equal(t, "Debate", req.Style)
	require.Equal(t, 10, req.DurationMinutes)
	require.Equal(t, "zh", req.Language)
}

func TestYouTubeGenerateRequest_ValidateURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"www.youtube.com/embed/dQw4w9WgXcQ",
		"youtube.com/v/dQw4w9WgXcQ",
	}
	for _, url := range valid {
		req := YouTubeGenerateRequest{YouTubeURL: url}
		require.NoError(t, req.ValidateURL(), url)
	}

	invalid := []string{
		"",
		"   ",
		"https://vimeo.com/123456",
		"https://www.youtube.com/",
		"not a url",
	}
	for _, url := range invalid {
		req := YouTubeGenerateRequest{YouTubeURL: url}
		require.Error(t, req.ValidateURL(), url)
	}
}
