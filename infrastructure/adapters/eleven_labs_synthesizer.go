package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
)

const transcriptionModelID = "scribe_v1"

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type elevenLabsSpeechRequest struct {
	Text          string                  `json:"text"`
	ModelId       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsDialogueInput struct {
	Text    string `json:"text"`
	VoiceId string `json:"voice_id"`
}

type elevenLabsDialogueRequest struct {
	Inputs  []elevenLabsDialogueInput `json:"inputs"`
	ModelId string                    `json:"model_id"`
}

type elevenLabsTranscription struct {
	Text string `json:"text"`
}

type elevenLabsSynthesizer struct {
	ContentFetcher
	elevenLabsConfig *config.ElevenLabsConfig
	logger           outbound.LoggerPort
}

func NewElevenLabsSynthesizer(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &elevenLabsSynthesizer{
		ContentFetcher:   contentFetcher,
		elevenLabsConfig: elevenLabsConfig,
		logger:           logger,
	}
}

func (e *elevenLabsSynthesizer) Synthesize(ctx context.Context, text string, voiceID string) ([]byte, error) {
	reqBody := elevenLabsSpeechRequest{
		Text:          text,
		ModelId:       e.elevenLabsConfig.ModelId,
		VoiceSettings: e.voiceSettings(),
	}

	req, err := e.jsonRequest(ctx, e.elevenLabsConfig.ApiUrl+"/text-to-speech/"+voiceID, reqBody)
	if err != nil {
		return nil, err
	}

	return e.FetchContent(req)
}

func (e *elevenLabsSynthesizer) SynthesizeDialogue(ctx context.Context, lines []outbound.DialogueLine) ([]byte, error) {
	inputs := make([]elevenLabsDialogueInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, elevenLabsDialogueInput{Text: line.Text, VoiceId: line.VoiceID})
	}

	reqBody := elevenLabsDialogueRequest{
		Inputs:  inputs,
		ModelId: e.elevenLabsConfig.ModelId,
	}

	req, err := e.jsonRequest(ctx, e.elevenLabsConfig.ApiUrl+"/text-to-dialogue", reqBody)
	if err != nil {
		return nil, err
	}

	return e.FetchContent(req)
}

func (e *elevenLabsSynthesizer) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model_id", transcriptionModelID); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.elevenLabsConfig.ApiUrl+"/speech-to-text", &buf)
	if err != nil {
		e.logger.Error(err, "Failed to create the transcription HTTP request")
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", e.elevenLabsConfig.ApiKey)

	body, err := e.FetchContent(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}

	var transcription elevenLabsTranscription
	if err := json.Unmarshal(body, &transcription); err != nil {
		e.logger.Error(err, "Failed to unmarshal the transcription response")
		return "", err
	}

	return transcription.Text, nil
}

func (e *elevenLabsSynthesizer) jsonRequest(ctx context.Context, url string, reqBody interface{}) (*http.Request, error) {
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		e.logger.ErrorWithFields(err, "Failed to marshal the request body for ElevenLabs API", map[string]interface{}{
			"URL": url,
		})
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		e.logger.ErrorWithFields(err, "Failed to create the HTTP POST request", map[string]interface{}{
			"URL": url,
		})
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.elevenLabsConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func (e *elevenLabsSynthesizer) voiceSettings() elevenLabsVoiceSettings {
	return elevenLabsVoiceSettings{
		Stability:       e.elevenLabsConfig.Stability,
		SimilarityBoost: e.elevenLabsConfig.SimilarityBoost,
		UseSpeakerBoost: e.elevenLabsConfig.SpeakerBoost,
	}
}
