package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
)

// Media analysis moves large payloads; the timeout is sized accordingly.
const analysisTimeout = 300 * time.Second

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiFileData struct {
	FileUri  string `json:"fileUri"`
	MimeType string `json:"mimeType"`
}

type geminiMediaPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
	FileData   *geminiFileData   `json:"fileData,omitempty"`
}

type geminiMediaContent struct {
	Role  string            `json:"role"`
	Parts []geminiMediaPart `json:"parts"`
}

type geminiMediaRequest struct {
	Contents         []geminiMediaContent   `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiMediaAnalyzer struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

// NewGeminiMediaAnalyzer answers prompts about attached or URL-addressed
// media via the generateContent endpoint.
func NewGeminiMediaAnalyzer(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.MediaAnalyzerPort {
	return &geminiMediaAnalyzer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiMediaAnalyzer) Analyze(ctx context.Context, prompt string, media []byte, mimeType string) (string, error) {
	parts := []geminiMediaPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(media),
		}},
	}
	return g.analyze(ctx, parts)
}

func (g *geminiMediaAnalyzer) AnalyzeByReference(ctx context.Context, prompt string, url string, mimeType string) (string, error) {
	parts := []geminiMediaPart{
		{Text: prompt},
		{FileData: &geminiFileData{
			FileUri:  url,
			MimeType: mimeType,
		}},
	}
	return g.analyze(ctx, parts)
}

func (g *geminiMediaAnalyzer) analyze(ctx context.Context, parts []geminiMediaPart) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	payload := geminiMediaRequest{
		Contents: []geminiMediaContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 4000,
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the analysis request body")
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s",
		g.geminiConfig.ApiUrl, g.geminiConfig.Model, g.geminiConfig.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the analysis HTTP request")
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := g.FetchContent(req)
	if err != nil {
		return "", fmt.Errorf("analysis request: %w", err)
	}

	var response geminiChunk
	if err := json.Unmarshal(body, &response); err != nil {
		g.logger.Error(err, "Failed to unmarshal the analysis response")
		return "", err
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", outbound.ErrEmptyGeneration
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}
