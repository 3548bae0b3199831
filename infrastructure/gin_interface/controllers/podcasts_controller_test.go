package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/StudyXTeam23/aipodcast/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

type syncDispatcher struct {
	mu        sync.Mutex
	submitted int
}

func (s *syncDispatcher) Submit(task func()) error {
	s.mu.Lock()
	s.submitted++
	s.mu.Unlock()
	task()
	return nil
}

type fakeLifecycle struct {
	podcasts map[string]domain.Podcast
	jobs     map[string]domain.Job
	created  []inbound.CreateProcessingParams
}

func newFakeLifecycle() *fakeLifecycle {
	return &fakeLifecycle{
		podcasts: make(map[string]domain.Podcast),
		jobs:     make(map[string]domain.Job),
	}
}

func (f *fakeLifecycle) CreateProcessingRequest(_ context.Context, params inbound.CreateProcessingParams) (domain.Podcast, domain.Job, error) {
	f.created = append(f.created, params)
	podcast := domain.Podcast{
		ID:         "pod-1",
		Title:      params.Title,
		SourceType: params.SourceType,
		Status:     domain.PodcastProcessing,
		SourceKey:  params.SourceKey,
		CreatedAt:  time.Now().UTC(),
	}
	job := domain.Job{
		ID:        "job-1",
		PodcastID: podcast.ID,
		Type:      params.JobType,
		Inputs:    params.Inputs,
		Status:    domain.JobPending,
	}
	f.podcasts[podcast.ID] = podcast
	f.jobs[job.ID] = job
	return podcast, job, nil
}

func (f *fakeLifecycle) GetPodcast(_ context.Context, id string) (domain.Podcast, error) {
	podcast, ok := f.podcasts[id]
	if !ok {
		return domain.Podcast{}, outbound.ErrRecordNotFound
	}
	return podcast, nil
}

func (f *fakeLifecycle) ListPodcasts(_ context.Context, _ outbound.ListPodcastsParams) ([]domain.Podcast, error) {
	var out []domain.Podcast
	for _, podcast := range f.podcasts {
		out = append(out, podcast)
	}
	return out, nil
}

func (f *fakeLifecycle) DeletePodcast(_ context.Context, id string) error {
	if _, ok := f.podcasts[id]; !ok {
		return outbound.ErrRecordNotFound
	}
	delete(f.podcasts, id)
	return nil
}

func (f *fakeLifecycle) GetJob(_ context.Context, id string) (domain.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return domain.Job{}, outbound.ErrRecordNotFound
	}
	return job, nil
}

type recordingRunner struct {
	mu   sync.Mutex
	runs []domain.Job
}

func (r *recordingRunner) Run(_ context.Context, job domain.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, job)
}

type stubBlobStore struct {
	blobs map[string][]byte
}

func (s *stubBlobStore) Put(_ context.Context, data []byte, keyHint string, _ string) (string, error) {
	if s.blobs == nil {
		s.blobs = make(map[string][]byte)
	}
	s.blobs[keyHint] = data
	return keyHint, nil
}

func (s *stubBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	return s.blobs[key], nil
}

func (s *stubBlobStore) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

func (s *stubBlobStore) PresignedURL(params outbound.PresignParams) (string, error) {
	return "https://signed.example.com/" + params.Key, nil
}

type stubVideoSource struct {
	metadata    domain.VideoMetadata
	metadataErr error
}

func (s *stubVideoSource) GetMetadata(context.Context, string) (domain.VideoMetadata, error) {
	return s.metadata, s.metadataErr
}

func (s *stubVideoSource) GetCaptions(context.Context, string, string) (string, error) {
	return "", nil
}

func (s *stubVideoSource) ExtractAudio(context.Context, string) ([]byte, string, error) {
	return nil, "", nil
}

type controllerFixture struct {
	lifecycle   *fakeLifecycle
	runner      *recordingRunner
	dispatcher  *syncDispatcher
	blobs       *stubBlobStore
	videoSource *stubVideoSource
	router      *gin.Engine
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &controllerFixture{
		lifecycle:   newFakeLifecycle(),
		runner:      &recordingRunner{},
		dispatcher:  &syncDispatcher{},
		blobs:       &stubBlobStore{},
		videoSource: &stubVideoSource{metadata: domain.VideoMetadata{Title: "A Video", VideoID: "dQw4w9WgXcQ"}},
	}

	controller := NewPodcastsController(nopLogger{}, f.dispatcher, f.lifecycle, f.runner,
		f.blobs, f.videoSource,
		&config.UploadConfig{MaxUploadBytes: 1 << 20},
		&config.ServerConfig{Port: "8080", ApiDomain: "http://localhost:8080"})

	f.router = gin.New()
	controller.RegisterRoutes(f.router)
	return f
}

func (f *controllerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestGenerate_DispatchesPipeline(t *testing.T) {
	f := newControllerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/podcasts/generate", gin.H{
		"topic": "the history of radio",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "pod-1", resp["podcast_id"])
	require.Equal(t, "job-1", resp["job_id"])
	require.Equal(t, "processing", resp["status"])

	require.Equal(t, 1, f.dispatcher.submitted)
	require.Len(t, f.runner.runs, 1)
	require.Equal(t, domain.GenerateJobType, f.runner.runs[0].Type)

	require.Len(t, f.lifecycle.created, 1)
	require.Equal(t, "Solo Talk Show", f.lifecycle.created[0].Inputs.Style)
	require.Equal(t, 5, f.lifecycle.created[0].Inputs.DurationMinutes)
}

func TestGenerate_RejectsShortTopic(t *testing.T) {
	f := newControllerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/podcasts/generate", gin.H{"topic": "hi"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, f.runner.runs)
}

func TestGenerateFromYouTube_RejectsBadURL(t *testing.T) {
	f := newControllerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/podcasts/generate-from-youtube", gin.H{
		"youtube_url": "https://vimeo.com/123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, f.runner.runs)
}

func TestGenerateFromYouTube_UsesVideoMetadata(t *testing.T) {
	f := newControllerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/podcasts/generate-from-youtube", gin.H{
		"youtube_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.lifecycle.created, 1)
	params := f.lifecycle.created[0]
	require.Equal(t, domain.YouTubeGenerateJobType, params.JobType)
	require.Equal(t, "Processing: A Video", params.Title)
	require.Equal(t, "A Video", params.ExtractionMetadata["youtube_title"])
}

func TestGetPodcast_NotFound(t *testing.T) {
	f := newControllerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/podcasts/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPodcast_AudioURLAttached(t *testing.T) {
	f := newControllerFixture(t)
	f.lifecycle.podcasts["pod-9"] = domain.Podcast{
		ID:       "pod-9",
		Title:    "Done",
		Status:   domain.PodcastCompleted,
		AudioKey: "podcasts/pod-9.mp3",
	}

	rec := f.do(t, http.MethodGet, "/api/v1/podcasts/pod-9", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "http://localhost:8080/api/v1/podcasts/pod-9/stream", resp["audio_url"])
}

func TestDownload_RequiresGeneratedAudio(t *testing.T) {
	f := newControllerFixture(t)
	f.lifecycle.podcasts["pod-2"] = domain.Podcast{ID: "pod-2", Status: domain.PodcastProcessing}

	rec := f.do(t, http.MethodGet, "/api/v1/podcasts/pod-2/download", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownload_ReturnsPresignedURL(t *testing.T) {
	f := newControllerFixture(t)
	f.lifecycle.podcasts["pod-3"] = domain.Podcast{
		ID:       "pod-3",
		Title:    "Episode",
		AudioKey: "podcasts/pod-3.mp3",
	}

	rec := f.do(t, http.MethodGet, "/api/v1/podcasts/pod-3/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, true, resp["success"])
	require.Equal(t, "https://signed.example.com/podcasts/pod-3.mp3", resp["download_url"])
	require.Equal(t, "Episode.mp3", resp["filename"])
}

func TestDeletePodcast(t *testing.T) {
	f := newControllerFixture(t)
	f.lifecycle.podcasts["pod-4"] = domain.Podcast{ID: "pod-4"}

	rec := f.do(t, http.MethodDelete, "/api/v1/podcasts/pod-4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, f.lifecycle.podcasts, "pod-4")

	rec = f.do(t, http.MethodDelete, "/api/v1/podcasts/pod-4", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJob(t *testing.T) {
	f := newControllerFixture(t)
	f.lifecycle.jobs["job-7"] = domain.Job{
		ID:       "job-7",
		Status:   domain.JobProcessing,
		Progress: 60,
	}

	rec := f.do(t, http.MethodGet, "/api/v1/jobs/job-7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var job domain.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	require.Equal(t, domain.JobProcessing, job.Status)
	require.Equal(t, 60, job.Progress)
}
