package domain

import "time"

type SourceType string

const (
	TextSourceType    SourceType = "text"
	AudioSourceType   SourceType = "audio"
	VideoSourceType   SourceType = "video"
	YouTubeSourceType SourceType = "youtube"
)

type PodcastStatus string

const (
	PodcastProcessing PodcastStatus = "processing"
	PodcastCompleted  PodcastStatus = "completed"
	PodcastFailed     PodcastStatus = "failed"
)

// Podcast is one unit of produced or source material. The ID never changes
// after creation and Status moves from processing to exactly one terminal
// value.
type Podcast struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	OriginalFilename   string                 `json:"original_filename"`
	SourceType         SourceType             `json:"source_type"`
	SourceURL          string                 `json:"source_url,omitempty"`
	ExtractionMetadata map[string]interface{} `json:"extraction_metadata,omitempty"`
	OriginalDuration   float64                `json:"original_duration,omitempty"`
	OriginalFormat     string                 `json:"original_format,omitempty"`
	Status             PodcastStatus          `json:"status"`
	SourceKey          string                 `json:"s3_key,omitempty"`
	AudioKey           string                 `json:"audio_s3_key,omitempty"`
	Transcript         string                 `json:"transcript,omitempty"`
	FileSizeBytes      int64                  `json:"file_size_bytes,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

type JobType string

const (
	UploadJobType          JobType = "upload"
	GenerateJobType        JobType = "generate"
	AnalyzeGenerateJobType JobType = "analyze_generate"
	YouTubeGenerateJobType JobType = "youtube_generate"
)

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// JobInputs carries the per-type parameters of one pipeline run. Unused
// fields stay at their zero values for the other job types.
type JobInputs struct {
	Topic             string `json:"topic,omitempty"`
	Style             string `json:"style,omitempty"`
	DurationMinutes   int    `json:"duration_minutes,omitempty"`
	Language          string `json:"language,omitempty"`
	SourceKey         string `json:"file_s3_key,omitempty"`
	SourceType        string `json:"source_type,omitempty"`
	EnhancementPrompt string `json:"enhancement_prompt,omitempty"`
	YouTubeURL        string `json:"youtube_url,omitempty"`
}

// Job is one pipeline execution against a Podcast. Progress only grows,
// ErrorMessage is set exactly when Status is failed, and a terminal Job is
// never resurrected.
type Job struct {
	ID            string    `json:"id"`
	PodcastID     string    `json:"podcast_id"`
	Type          JobType   `json:"type"`
	Inputs        JobInputs `json:"inputs"`
	Status        JobStatus `json:"status"`
	Progress      int       `json:"progress"`
	StatusMessage string    `json:"status_message,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DialogueSegment is one speaker turn of a generated script, bound to the
// synthesis voice it will be spoken with.
type DialogueSegment struct {
	Speaker string
	Text    string
	VoiceID string
}

// ExtractionResult is the structured outcome of analyzing source media.
type ExtractionResult struct {
	Transcript string   `json:"transcript"`
	Summary    string   `json:"summary"`
	Topics     []string `json:"topics"`
	Insights   []string `json:"insights"`
	Duration   float64  `json:"duration"`
	Degraded   bool     `json:"-"`
}

// VideoMetadata describes a remote video before its content is fetched.
type VideoMetadata struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Uploader        string `json:"uploader"`
	DurationSeconds int    `json:"duration"`
	VideoID         string `json:"video_id"`
}
