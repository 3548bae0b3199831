package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/donovanhide/eventsource"
)

const (
	generationTimeout = 180 * time.Second
	maxStreamRetries  = 3
)

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiStreamRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiChunk struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiTextGenerator struct {
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

// NewGeminiTextGenerator speaks the streamGenerateContent SSE endpoint and
// accumulates the streamed chunks into the final text.
func NewGeminiTextGenerator(geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &geminiTextGenerator{
		logger:       logger,
		geminiConfig: geminiConfig,
	}
}

func (g *geminiTextGenerator) Generate(ctx context.Context, genReq outbound.GenerateTextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	req, err := g.createRequest(ctx, genReq)
	if err != nil {
		g.logger.Error(err, "Failed to create HTTP request for generation stream")
		return "", err
	}

	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		g.logger.Error(err, "Failed to subscribe to generation stream")
		return "", fmt.Errorf("subscribe to generation stream: %w", err)
	}

	var out strings.Builder
	retryCount := 0

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev := <-stream.Events:
			text, err := g.extractPayload(ev)
			if err != nil {
				return "", err
			}
			out.WriteString(text)
			retryCount = 0
		case err := <-stream.Errors:
			if err == io.EOF {
				result := out.String()
				if strings.TrimSpace(result) == "" {
					return "", outbound.ErrEmptyGeneration
				}
				return result, nil
			}
			if retryCount < maxStreamRetries {
				g.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
					"retry_count": retryCount,
				})
				retryCount++
				continue
			}
			g.logger.Error(err, "Error occurred during streaming, max retries reached")
			return "", fmt.Errorf("generation stream failed: %w", err)
		}
	}
}

func (g *geminiTextGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunk geminiChunk
	if err := json.Unmarshal([]byte(event.Data()), &chunk); err != nil {
		g.logger.Error(err, "Failed to unmarshal stream event data")
		return "", err
	}
	if len(chunk.Candidates) == 0 || len(chunk.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return chunk.Candidates[0].Content.Parts[0].Text, nil
}

func (g *geminiTextGenerator) createRequest(ctx context.Context, genReq outbound.GenerateTextRequest) (*http.Request, error) {
	payload := geminiStreamRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: genReq.Prompt}},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     genReq.Temperature,
			MaxOutputTokens: genReq.MaxTokens,
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:streamGenerateContent?alt=sse&key=%s",
		g.geminiConfig.ApiUrl, g.geminiConfig.Model, g.geminiConfig.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
