package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/domain"
)

// Progress bands per phase. Extraction owns 0-30, script generation 30-60,
// synthesis 60-95, persistence 95-100.
const (
	progressFetch      = 5
	progressExtraction = 10
	progressScript     = 30
	progressSynthesis  = 60
	progressPersist    = 95
	progressDone       = 100
)

type pipelineRunner struct {
	logger      outbound.LoggerPort
	podcasts    outbound.PodcastStorePort
	jobs        outbound.JobStorePort
	blobs       outbound.BlobStorePort
	extractor   inbound.ContentExtractorPort
	scripts     inbound.ScriptGeneratorPort
	segmenter   inbound.DialogueSegmenterPort
	synthesizer outbound.SpeechSynthesizerPort
	videoSource outbound.VideoSourcePort
}

func NewPipelineRunner(logger outbound.LoggerPort, podcasts outbound.PodcastStorePort,
	jobs outbound.JobStorePort, blobs outbound.BlobStorePort,
	extractor inbound.ContentExtractorPort, scripts inbound.ScriptGeneratorPort,
	segmenter inbound.DialogueSegmenterPort, synthesizer outbound.SpeechSynthesizerPort,
	videoSource outbound.VideoSourcePort) inbound.PipelineRunnerPort {
	return &pipelineRunner{
		logger:      logger,
		podcasts:    podcasts,
		jobs:        jobs,
		blobs:       blobs,
		extractor:   extractor,
		scripts:     scripts,
		segmenter:   segmenter,
		synthesizer: synthesizer,
		videoSource: videoSource,
	}
}

// Run drives one Job through its phase sequence to a terminal state. It
// never returns an error: any phase failure is recorded on the Job record
// and the remaining phases are skipped. Record writes after the podcast has
// been deleted mid-run are logged and swallowed.
func (r *pipelineRunner) Run(ctx context.Context, job domain.Job) {
	tracker := &progressTracker{runner: r, jobID: job.ID}

	r.updateJob(ctx, job.ID, map[string]interface{}{
		"status":         string(domain.JobProcessing),
		"progress":       0,
		"status_message": "Processing started",
	})

	var err error
	switch job.Type {
	case domain.UploadJobType:
		err = r.runUpload(ctx, job, tracker)
	case domain.GenerateJobType:
		err = r.runGenerate(ctx, job, tracker)
	case domain.AnalyzeGenerateJobType:
		err = r.runAnalyzeGenerate(ctx, job, tracker)
	case domain.YouTubeGenerateJobType:
		err = r.runYouTubeGenerate(ctx, job, tracker)
	default:
		err = fmt.Errorf("unknown job type %q", job.Type)
	}

	if err != nil {
		r.fail(ctx, job, err)
		return
	}

	tracker.set(ctx, progressDone, "Completed")
	r.updateJob(ctx, job.ID, map[string]interface{}{
		"status": string(domain.JobCompleted),
	})
	r.logger.InfoWithFields("Pipeline completed", map[string]interface{}{
		"job_id":     job.ID,
		"podcast_id": job.PodcastID,
	})
}

func (r *pipelineRunner) runUpload(ctx context.Context, job domain.Job, tracker *progressTracker) error {
	podcast, err := r.podcasts.Get(ctx, job.PodcastID)
	if err != nil {
		return fmt.Errorf("load podcast record: %w", err)
	}

	tracker.set(ctx, progressFetch, "Fetching uploaded file")
	updates := map[string]interface{}{
		"status": string(domain.PodcastCompleted),
	}

	if _, isMedia := MediaMimeType(podcast.OriginalFilename); isMedia {
		data, err := r.blobs.Get(ctx, podcast.SourceKey)
		if err != nil {
			return fmt.Errorf("fetch source blob: %w", err)
		}

		tracker.set(ctx, progressSynthesis, "Transcribing audio")
		transcript, err := r.synthesizer.Transcribe(ctx, data, podcast.OriginalFilename)
		if err != nil {
			return fmt.Errorf("transcribe upload: %w", err)
		}
		updates["transcript"] = transcript
		// The upload is the deliverable itself.
		updates["audio_s3_key"] = podcast.SourceKey
	}

	tracker.set(ctx, progressPersist, "Saving results")
	r.updatePodcast(ctx, podcast.ID, updates)
	return nil
}

func (r *pipelineRunner) runGenerate(ctx context.Context, job domain.Job, tracker *progressTracker) error {
	tracker.set(ctx, progressScript, "Generating podcast script")
	script, err := r.scripts.GenerateFromTopic(ctx, inbound.GenerateScriptParams{
		Topic:           job.Inputs.Topic,
		Style:           job.Inputs.Style,
		DurationMinutes: job.Inputs.DurationMinutes,
		Language:        job.Inputs.Language,
	})
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}

	return r.synthesizeAndPersist(ctx, job, tracker, script, nil)
}

func (r *pipelineRunner) runAnalyzeGenerate(ctx context.Context, job domain.Job, tracker *progressTracker) error {
	podcast, err := r.podcasts.Get(ctx, job.PodcastID)
	if err != nil {
		return fmt.Errorf("load podcast record: %w", err)
	}

	tracker.set(ctx, progressFetch, "Fetching source file")
	data, err := r.blobs.Get(ctx, job.Inputs.SourceKey)
	if err != nil {
		return fmt.Errorf("fetch source blob: %w", err)
	}

	tracker.set(ctx, progressExtraction, "Analyzing source content")
	extraction, err := r.extractor.ExtractFromMedia(ctx, data, podcast.OriginalFilename, job.Inputs.EnhancementPrompt)
	if err != nil {
		return fmt.Errorf("extract content: %w", err)
	}

	tracker.set(ctx, progressScript, "Generating podcast script")
	script, err := r.scripts.GenerateFromExtraction(ctx, inbound.GenerateFromExtractionParams{
		Extraction:        extraction,
		EnhancementPrompt: job.Inputs.EnhancementPrompt,
		Style:             job.Inputs.Style,
		DurationMinutes:   job.Inputs.DurationMinutes,
		Language:          job.Inputs.Language,
	})
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}

	extra := map[string]interface{}{
		"extraction_metadata": extractionMetadata(extraction),
	}
	if extraction.Duration > 0 {
		extra["original_duration"] = extraction.Duration
	}
	return r.synthesizeAndPersist(ctx, job, tracker, script, extra)
}

func (r *pipelineRunner) runYouTubeGenerate(ctx context.Context, job domain.Job, tracker *progressTracker) error {
	podcast, err := r.podcasts.Get(ctx, job.PodcastID)
	if err != nil {
		return fmt.Errorf("load podcast record: %w", err)
	}

	url := job.Inputs.YouTubeURL

	tracker.set(ctx, progressFetch, "Fetching video captions")
	captions, err := r.videoSource.GetCaptions(ctx, url, job.Inputs.Language)
	if err != nil {
		r.logger.ErrorWithFields(err, "Caption fetch failed, falling back to audio extraction", map[string]interface{}{
			"job_id": job.ID,
		})
		captions = ""
	}

	var extraction domain.ExtractionResult
	if strings.TrimSpace(captions) != "" {
		tracker.set(ctx, progressExtraction, "Analyzing captions")
		extraction, err = r.extractor.ExtractFromCaptions(ctx, captions, job.Inputs.EnhancementPrompt)
		if err != nil {
			return fmt.Errorf("extract captions: %w", err)
		}
	} else {
		tracker.set(ctx, progressExtraction, "Extracting video audio")
		audio, format, err := r.videoSource.ExtractAudio(ctx, url)
		if err != nil {
			return fmt.Errorf("extract video audio: %w", err)
		}
		extraction, err = r.extractor.ExtractFromMedia(ctx, audio, "extracted."+format, job.Inputs.EnhancementPrompt)
		if err != nil {
			return fmt.Errorf("extract content: %w", err)
		}
	}

	tracker.set(ctx, progressScript, "Generating podcast script")
	script, err := r.scripts.GenerateFromExtraction(ctx, inbound.GenerateFromExtractionParams{
		Extraction:        extraction,
		EnhancementPrompt: job.Inputs.EnhancementPrompt,
		Style:             job.Inputs.Style,
		DurationMinutes:   job.Inputs.DurationMinutes,
		Language:          job.Inputs.Language,
	})
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}

	extra := map[string]interface{}{
		"extraction_metadata": extractionMetadata(extraction),
	}
	// The placeholder title from creation time gives way to the video's own.
	if title, ok := podcast.ExtractionMetadata["youtube_title"].(string); ok && title != "" {
		extra["title"] = title
	}
	return r.synthesizeAndPersist(ctx, job, tracker, script, extra)
}

// synthesizeAndPersist covers the tail shared by every generating job kind:
// segment the script, synthesize audio, upload it, finalize the podcast.
func (r *pipelineRunner) synthesizeAndPersist(ctx context.Context, job domain.Job, tracker *progressTracker,
	script string, extraUpdates map[string]interface{}) error {
	tracker.set(ctx, progressSynthesis, "Synthesizing audio")

	segments := r.segmenter.Segment(script, job.Inputs.Language)
	if len(segments) == 0 {
		return fmt.Errorf("script produced no speakable segments")
	}

	audio, err := r.synthesizeSegments(ctx, script, segments, job.Inputs.Language)
	if err != nil {
		return fmt.Errorf("synthesize audio: %w", err)
	}

	tracker.set(ctx, progressPersist, "Uploading audio")
	key, err := r.blobs.Put(ctx, audio, "podcasts/"+job.PodcastID+".mp3", "audio/mpeg")
	if err != nil {
		return fmt.Errorf("upload audio: %w", err)
	}

	updates := map[string]interface{}{
		"status":       string(domain.PodcastCompleted),
		"audio_s3_key": key,
		"transcript":   script,
	}
	for k, v := range extraUpdates {
		updates[k] = v
	}
	r.updatePodcast(ctx, job.PodcastID, updates)
	return nil
}

// synthesizeSegments prefers the multi-voice dialogue path and falls back to
// single-voice synthesis of the whole script when the dialogue call fails or
// only one segment exists.
func (r *pipelineRunner) synthesizeSegments(ctx context.Context, script string,
	segments []domain.DialogueSegment, language string) ([]byte, error) {
	if len(segments) == 1 {
		return r.synthesizer.Synthesize(ctx, segments[0].Text, segments[0].VoiceID)
	}

	lines := make([]outbound.DialogueLine, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, outbound.DialogueLine{Text: seg.Text, VoiceID: seg.VoiceID})
	}

	audio, err := r.synthesizer.SynthesizeDialogue(ctx, lines)
	if err == nil {
		return audio, nil
	}
	r.logger.Error(err, "Dialogue synthesis failed, falling back to single voice")

	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(seg.Text)
	}
	return r.synthesizer.Synthesize(ctx, b.String(), domain.VoicesForLanguage(language).Primary)
}

func (r *pipelineRunner) fail(ctx context.Context, job domain.Job, cause error) {
	r.logger.ErrorWithFields(cause, "Pipeline failed", map[string]interface{}{
		"job_id":     job.ID,
		"podcast_id": job.PodcastID,
		"job_type":   string(job.Type),
	})
	// Progress keeps its last value.
	r.updateJob(ctx, job.ID, map[string]interface{}{
		"status":        string(domain.JobFailed),
		"error_message": cause.Error(),
	})
	r.updatePodcast(ctx, job.PodcastID, map[string]interface{}{
		"status": string(domain.PodcastFailed),
	})
}

func (r *pipelineRunner) updateJob(ctx context.Context, jobID string, fields map[string]interface{}) {
	fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	if err := r.jobs.Update(ctx, jobID, fields); err != nil {
		r.logger.ErrorWithFields(err, "Failed to update job record", map[string]interface{}{
			"job_id": jobID,
		})
	}
}

func (r *pipelineRunner) updatePodcast(ctx context.Context, podcastID string, fields map[string]interface{}) {
	fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	if err := r.podcasts.Update(ctx, podcastID, fields); err != nil {
		r.logger.ErrorWithFields(err, "Failed to update podcast record", map[string]interface{}{
			"podcast_id": podcastID,
		})
	}
}

func extractionMetadata(extraction domain.ExtractionResult) map[string]interface{} {
	return map[string]interface{}{
		"summary":  extraction.Summary,
		"topics":   extraction.Topics,
		"insights": extraction.Insights,
		"degraded": extraction.Degraded,
	}
}

// progressTracker enforces monotonic progress for one job run.
type progressTracker struct {
	runner *pipelineRunner
	jobID  string
	last   int
}

func (t *progressTracker) set(ctx context.Context, progress int, message string) {
	if progress < t.last {
		progress = t.last
	}
	t.last = progress
	t.runner.updateJob(ctx, t.jobID, map[string]interface{}{
		"progress":       progress,
		"status_message": message,
	})
}
