package services

import (
	"context"
	"fmt"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/domain"
	"github.com/google/uuid"
)

type podcastLifecycle struct {
	logger   outbound.LoggerPort
	podcasts outbound.PodcastStorePort
	jobs     outbound.JobStorePort
	blobs    outbound.BlobStorePort
}

func NewPodcastLifecycle(logger outbound.LoggerPort, podcasts outbound.PodcastStorePort,
	jobs outbound.JobStorePort, blobs outbound.BlobStorePort) inbound.PodcastLifecyclePort {
	return &podcastLifecycle{
		logger:   logger,
		podcasts: podcasts,
		jobs:     jobs,
		blobs:    blobs,
	}
}

// CreateProcessingRequest writes the Podcast record first and the Job record
// second. A failed Job write deletes the just-written Podcast (and any blob
// uploaded for this request) so that no orphaned Podcast survives.
func (p *podcastLifecycle) CreateProcessingRequest(ctx context.Context, params inbound.CreateProcessingParams) (domain.Podcast, domain.Job, error) {
	now := time.Now().UTC()

	podcast := domain.Podcast{
		ID:                 uuid.NewString(),
		Title:              params.Title,
		OriginalFilename:   params.OriginalFilename,
		SourceType:         params.SourceType,
		SourceURL:          params.SourceURL,
		ExtractionMetadata: params.ExtractionMetadata,
		OriginalDuration:   params.OriginalDuration,
		OriginalFormat:     params.OriginalFormat,
		Status:             domain.PodcastProcessing,
		SourceKey:          params.SourceKey,
		FileSizeBytes:      params.FileSizeBytes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	job := domain.Job{
		ID:        uuid.NewString(),
		PodcastID: podcast.ID,
		Type:      params.JobType,
		Inputs:    params.Inputs,
		Status:    domain.JobPending,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.podcasts.Save(ctx, podcast); err != nil {
		p.rollbackBlob(ctx, params)
		return domain.Podcast{}, domain.Job{}, fmt.Errorf("save podcast record: %w", err)
	}

	if err := p.jobs.Save(ctx, job); err != nil {
		if delErr := p.podcasts.Delete(ctx, podcast.ID); delErr != nil {
			p.logger.ErrorWithFields(delErr, "Failed to roll back podcast record", map[string]interface{}{
				"podcast_id": podcast.ID,
			})
		}
		p.rollbackBlob(ctx, params)
		return domain.Podcast{}, domain.Job{}, fmt.Errorf("save job record: %w", err)
	}

	p.logger.InfoWithFields("Processing request created", map[string]interface{}{
		"podcast_id": podcast.ID,
		"job_id":     job.ID,
		"job_type":   string(job.Type),
	})

	return podcast, job, nil
}

func (p *podcastLifecycle) rollbackBlob(ctx context.Context, params inbound.CreateProcessingParams) {
	if !params.BlobFreshlyUploaded || params.SourceKey == "" {
		return
	}
	if err := p.blobs.Delete(ctx, params.SourceKey); err != nil {
		p.logger.ErrorWithFields(err, "Failed to roll back uploaded blob", map[string]interface{}{
			"key": params.SourceKey,
		})
	}
}

func (p *podcastLifecycle) GetPodcast(ctx context.Context, id string) (domain.Podcast, error) {
	return p.podcasts.Get(ctx, id)
}

func (p *podcastLifecycle) ListPodcasts(ctx context.Context, params outbound.ListPodcastsParams) ([]domain.Podcast, error) {
	return p.podcasts.List(ctx, params)
}

// DeletePodcast removes the podcast's blobs and then its record. Blob
// deletion is best effort: a failure is logged and record deletion proceeds.
func (p *podcastLifecycle) DeletePodcast(ctx context.Context, id string) error {
	podcast, err := p.podcasts.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, key := range []string{podcast.SourceKey, podcast.AudioKey} {
		if key == "" {
			continue
		}
		if err := p.blobs.Delete(ctx, key); err != nil {
			p.logger.ErrorWithFields(err, "Failed to delete podcast blob", map[string]interface{}{
				"podcast_id": id,
				"key":        key,
			})
		}
	}

	if err := p.podcasts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete podcast record: %w", err)
	}

	p.logger.InfoWithFields("Podcast deleted", map[string]interface{}{"podcast_id": id})
	return nil
}

func (p *podcastLifecycle) GetJob(ctx context.Context, id string) (domain.Job, error) {
	return p.jobs.Get(ctx, id)
}
