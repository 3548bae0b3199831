package outbound

import (
	"context"
	"errors"

	"github.com/StudyXTeam23/aipodcast/domain"
)

// ErrRecordNotFound is returned by point reads of absent records.
var ErrRecordNotFound = errors.New("record not found")

type ListPodcastsParams struct {
	Page   int
	Limit  int
	Search string
}

type PodcastStorePort interface {
	Save(ctx context.Context, podcast domain.Podcast) error
	Get(ctx context.Context, id string) (domain.Podcast, error)
	// List returns podcasts newest first, filtered by a case-insensitive
	// title substring when Search is set.
	List(ctx context.Context, params ListPodcastsParams) ([]domain.Podcast, error)
	// Update merges the given fields into the stored record.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type JobStorePort interface {
	Save(ctx context.Context, job domain.Job) error
	Get(ctx context.Context, id string) (domain.Job, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}
