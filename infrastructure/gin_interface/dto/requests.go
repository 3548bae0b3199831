package dto

import (
	"fmt"
	"regexp"
	"strings"
)

type GenerateRequest struct {
	Topic           string `json:"topic" binding:"required,min=5,max=500"`
	Style           string `json:"style"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,gte=3,lte=15"`
	Language        string `json:"language"`
}

func (r *GenerateRequest) ApplyDefaults() {
	if r.Style == "" {
		r.Style = "Solo Talk Show"
	}
	if r.DurationMinutes == 0 {
		r.DurationMinutes = 5
	}
	if r.Language == "" {
		r.Language = "en"
	}
}

type YouTubeGenerateRequest struct {
	YouTubeURL        string `json:"youtube_url" binding:"required"`
	Style             string `json:"style"`
	DurationMinutes   int    `json:"duration_minutes" binding:"omitempty,gte=3,lte=15"`
	Language          string `json:"language"`
	EnhancementPrompt string `json:"enhancement_prompt"`
}

func (r *YouTubeGenerateRequest) ApplyDefaults() {
	if r.Style == "" {
		r.Style = "Conversation"
	}
	if r.DurationMinutes == 0 {
		r.DurationMinutes = 5
	}
	if r.Language == "" {
		r.Language = "en"
	}
}

var youtubeURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtu\.be/[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/v/[\w-]+`),
}

// ValidateURL checks the request's URL against the accepted YouTube shapes.
func (r *YouTubeGenerateRequest) ValidateURL() error {
	url := strings.TrimSpace(r.YouTubeURL)
	if url == "" {
		return fmt.Errorf("youtube_url must not be empty")
	}
	for _, pattern := range youtubeURLPatterns {
		if pattern.MatchString(url) {
			return nil
		}
	}
	return fmt.Errorf("invalid YouTube URL")
}
