package inbound

import (
	"context"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/domain"
)

type CreateProcessingParams struct {
	Title              string
	OriginalFilename   string
	SourceType         domain.SourceType
	SourceURL          string
	SourceKey          string
	FileSizeBytes      int64
	OriginalFormat     string
	OriginalDuration   float64
	ExtractionMetadata map[string]interface{}
	JobType            domain.JobType
	Inputs             domain.JobInputs
	// BlobFreshlyUploaded marks SourceKey as uploaded for this request, so
	// a failed create rolls the blob back along with the records.
	BlobFreshlyUploaded bool
}

type PodcastLifecyclePort interface {
	// CreateProcessingRequest persists the Podcast and Job pair. Either both
	// records exist afterwards or neither does.
	CreateProcessingRequest(ctx context.Context, params CreateProcessingParams) (domain.Podcast, domain.Job, error)
	GetPodcast(ctx context.Context, id string) (domain.Podcast, error)
	ListPodcasts(ctx context.Context, params outbound.ListPodcastsParams) ([]domain.Podcast, error)
	// DeletePodcast removes the record and, best effort, its blobs.
	DeletePodcast(ctx context.Context, id string) error
	GetJob(ctx context.Context, id string) (domain.Job, error)
}
