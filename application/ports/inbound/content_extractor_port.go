package inbound

import (
	"context"

	"github.com/StudyXTeam23/aipodcast/domain"
)

type ContentExtractorPort interface {
	// ExtractFromMedia analyzes an audio or video payload. A response that
	// cannot be decoded as structured output yields a degraded result, not
	// an error.
	ExtractFromMedia(ctx context.Context, media []byte, filename string, enhancementPrompt string) (domain.ExtractionResult, error)
	// ExtractFromCaptions analyzes already-transcribed caption text.
	ExtractFromCaptions(ctx context.Context, captions string, enhancementPrompt string) (domain.ExtractionResult, error)
}
