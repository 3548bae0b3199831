package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/domain"
)

// ErrUnsupportedFormat rejects files whose extension is neither a known
// audio nor video format.
var ErrUnsupportedFormat = errors.New("unsupported media format")

const degradedSummary = "Content analysis failed"

var mediaMimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

// MediaMimeType maps a filename to the MIME type used when attaching it to
// an analysis request. ok is false for unrecognized extensions.
func MediaMimeType(filename string) (string, bool) {
	mime, ok := mediaMimeTypes[strings.ToLower(filepath.Ext(filename))]
	return mime, ok
}

type contentExtractor struct {
	logger        outbound.LoggerPort
	analyzer      outbound.MediaAnalyzerPort
	textGenerator outbound.TextGeneratorPort
}

func NewContentExtractor(logger outbound.LoggerPort, analyzer outbound.MediaAnalyzerPort, textGenerator outbound.TextGeneratorPort) inbound.ContentExtractorPort {
	return &contentExtractor{
		logger:        logger,
		analyzer:      analyzer,
		textGenerator: textGenerator,
	}
}

func (c *contentExtractor) ExtractFromMedia(ctx context.Context, media []byte, filename string, enhancementPrompt string) (domain.ExtractionResult, error) {
	mimeType, ok := MediaMimeType(filename)
	if !ok {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	raw, err := c.analyzer.Analyze(ctx, analysisPrompt(enhancementPrompt), media, mimeType)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("analyze media: %w", err)
	}

	return c.decodeResult(raw), nil
}

func (c *contentExtractor) ExtractFromCaptions(ctx context.Context, captions string, enhancementPrompt string) (domain.ExtractionResult, error) {
	prompt := analysisPrompt(enhancementPrompt) +
		"\nThe content to analyze is the following caption transcript:\n\n" + captions

	raw, err := c.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("analyze captions: %w", err)
	}

	result := c.decodeResult(raw)
	if result.Degraded {
		// The captions themselves are a usable transcript.
		result.Transcript = captions
	}
	return result, nil
}

// decodeResult parses the capability's structured output. A response that is
// not valid JSON after fence stripping degrades to a best-effort result
// carrying the raw text as transcript; it never fails.
func (c *contentExtractor) decodeResult(raw string) domain.ExtractionResult {
	cleaned := stripCodeFences(raw)

	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		c.logger.WarnWithFields("Structured analysis output unparseable, using degraded result", map[string]interface{}{
			"response_chars": len(raw),
		})
		return domain.ExtractionResult{
			Transcript: raw,
			Summary:    degradedSummary,
			Topics:     []string{},
			Insights:   []string{},
			Degraded:   true,
		}
	}
	if result.Topics == nil {
		result.Topics = []string{}
	}
	if result.Insights == nil {
		result.Insights = []string{}
	}
	return result
}

// stripCodeFences removes the ```json / ``` markers models add around
// structured output despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func analysisPrompt(enhancementPrompt string) string {
	prompt := `Analyze this content and provide the following information:

1. Transcript: a full transcription of the spoken content
2. Summary: a concise summary of the main content (100-200 words)
3. Topics: 3-5 core topics (a few words each)
4. Insights: 3-5 key insights or takeaways (one sentence each)

`
	if enhancementPrompt != "" {
		prompt += "Special focus: " + enhancementPrompt + "\n"
	}
	prompt += `
Return the result as JSON:
{
  "transcript": "full transcription...",
  "summary": "content summary...",
  "topics": ["topic 1", "topic 2", "topic 3"],
  "insights": ["insight 1", "insight 2", "insight 3"],
  "duration": estimated duration in seconds
}

CRITICAL:
- Return the JSON directly without any markdown code block markers
- Do not add any extra explanation text
- Make sure the JSON is completely valid
`
	return prompt
}
