package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	response string
	err      error
	prompt   string
	mimeType string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, prompt string, _ []byte, mimeType string) (string, error) {
	f.prompt = prompt
	f.mimeType = mimeType
	return f.response, f.err
}

func (f *fakeAnalyzer) AnalyzeByReference(_ context.Context, prompt string, _ string, _ string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestContentExtractor_StructuredResponse(t *testing.T) {
	analyzer := &fakeAnalyzer{
		response: `{"transcript": "hello world", "summary": "a greeting", "topics": ["greetings"], "insights": ["people say hello"], "duration": 12.5}`,
	}
	extractor := NewContentExtractor(nopLogger{}, analyzer, &scriptedTextGenerator{})

	result, err := extractor.ExtractFromMedia(context.Background(), []byte("audio"), "greeting.mp3", "")
	require.NoError(t, err)
	require.False(t, result.Degraded)
	require.Equal(t, "hello world", result.Transcript)
	require.Equal(t, "a greeting", result.Summary)
	require.Equal(t, []string{"greetings"}, result.Topics)
	require.Equal(t, 12.5, result.Duration)
	require.Equal(t, "audio/mpeg", analyzer.mimeType)
}

func TestContentExtractor_FencedResponseStillParses(t *testing.T) {
	analyzer := &fakeAnalyzer{
		response: "```json\n{\"transcript\": \"text\", \"summary\": \"sum\"}\n```",
	}
	extractor := NewContentExtractor(nopLogger{}, analyzer, &scriptedTextGenerator{})

	result, err := extractor.ExtractFromMedia(context.Background(), []byte("audio"), "talk.wav", "")
	require.NoError(t, err)
	require.False(t, result.Degraded)
	require.Equal(t, "text", result.Transcript)
	require.Equal(t, "sum", result.Summary)
}

func TestContentExtractor_UnparseableResponseDegrades(t *testing.T) {
	analyzer := &fakeAnalyzer{response: "The audio discusses the history of radio."}
	extractor := NewContentExtractor(nopLogger{}, analyzer, &scriptedTextGenerator{})

	result, err := extractor.ExtractFromMedia(context.Background(), []byte("audio"), "talk.mp3", "")
	require.NoError(t, err, "an unparseable analysis must degrade, not fail")
	require.True(t, result.Degraded)
	require.Equal(t, "The audio discusses the history of radio.", result.Transcript)
	require.Equal(t, degradedSummary, result.Summary)
	require.Empty(t, result.Topics)
	require.NotNil(t, result.Topics)
	require.Empty(t, result.Insights)
	require.NotNil(t, result.Insights)
}

func TestContentExtractor_UnsupportedExtension(t *testing.T) {
	extractor := NewContentExtractor(nopLogger{}, &fakeAnalyzer{}, &scriptedTextGenerator{})

	_, err := extractor.ExtractFromMedia(context.Background(), []byte("bytes"), "notes.txt", "")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestContentExtractor_AnalyzerErrorPropagates(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("gemini unavailable")}
	extractor := NewContentExtractor(nopLogger{}, analyzer, &scriptedTextGenerator{})

	_, err := extractor.ExtractFromMedia(context.Background(), []byte("audio"), "talk.mp3", "")
	require.ErrorContains(t, err, "gemini unavailable")
}

func TestContentExtractor_EnhancementPromptIncluded(t *testing.T) {
	analyzer := &fakeAnalyzer{response: `{"transcript": "t", "summary": "s"}`}
	extractor := NewContentExtractor(nopLogger{}, analyzer, &scriptedTextGenerator{})

	_, err := extractor.ExtractFromMedia(context.Background(), []byte("audio"), "talk.mp3", "focus on the guest's arguments")
	require.NoError(t, err)
	require.Contains(t, analyzer.prompt, "focus on the guest's arguments")
}

func TestContentExtractor_CaptionsDegradedKeepsCaptionText(t *testing.T) {
	gen := &scriptedTextGenerator{responses: []string{"not json at all"}}
	extractor := NewContentExtractor(nopLogger{}, &fakeAnalyzer{}, gen)

	result, err := extractor.ExtractFromCaptions(context.Background(), "the original caption text", "")
	require.NoError(t, err)
	require.True(t, result.Degraded)
	require.Equal(t, "the original caption text", result.Transcript)

	require.Len(t, gen.requests, 1)
	require.Contains(t, gen.requests[0].Prompt, "the original caption text")
}

func TestMediaMimeType(t *testing.T) {
	mime, ok := MediaMimeType("Episode.MP3")
	require.True(t, ok)
	require.Equal(t, "audio/mpeg", mime)

	mime, ok = MediaMimeType("clip.mov")
	require.True(t, ok)
	require.Equal(t, "video/quicktime", mime)

	_, ok = MediaMimeType("document.pdf")
	require.False(t, ok)
}
