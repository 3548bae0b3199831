package dto

import (
	"github.com/StudyXTeam23/aipodcast/domain"
)

type CreateResponse struct {
	PodcastID string `json:"podcast_id"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type PodcastResponse struct {
	domain.Podcast
	AudioURL string `json:"audio_url,omitempty"`
}

// NewPodcastResponse attaches the service's streaming URL for podcasts whose
// audio exists.
func NewPodcastResponse(podcast domain.Podcast, apiDomain string) PodcastResponse {
	resp := PodcastResponse{Podcast: podcast}
	if podcast.AudioKey != "" {
		resp.AudioURL = apiDomain + "/api/v1/podcasts/" + podcast.ID + "/stream"
	}
	return resp
}

type DownloadResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"download_url"`
	ExpiresIn   int    `json:"expires_in"`
	Filename    string `json:"filename"`
}
