package outbound

import (
	"context"

	"github.com/StudyXTeam23/aipodcast/domain"
)

// VideoSourcePort fetches metadata and content for remotely hosted videos.
// GetCaptions returns an empty string, not an error, when no captions exist.
type VideoSourcePort interface {
	GetMetadata(ctx context.Context, url string) (domain.VideoMetadata, error)
	GetCaptions(ctx context.Context, url string, languageHint string) (string, error)
	ExtractAudio(ctx context.Context, url string) ([]byte, string, error)
}
