package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
)

const (
	outlineTemperature = 0.8
	outlineMaxTokens   = 2000
	scriptTemperature  = 0.7
	scriptMaxTokens    = 4000
)

type scriptGenerator struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
}

func NewScriptGenerator(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort) inbound.ScriptGeneratorPort {
	return &scriptGenerator{
		logger:        logger,
		textGenerator: textGenerator,
	}
}

// GenerateFromTopic runs the two-phase outline then full-script sequence.
// The outline call uses a higher temperature for structure; the script call
// embeds the outline verbatim. An empty outline is a hard failure and phase
// two is never attempted.
func (s *scriptGenerator) GenerateFromTopic(ctx context.Context, params inbound.GenerateScriptParams) (string, error) {
	var outlinePrompt, scriptTemplate string
	if params.Language == "zh" {
		outlinePrompt = outlinePromptZH(params.Topic, params.Style, params.DurationMinutes)
		scriptTemplate = scriptPromptZH(params.Topic, params.Style, params.DurationMinutes)
	} else {
		outlinePrompt = outlinePromptEN(params.Topic, params.Style, params.DurationMinutes)
		scriptTemplate = scriptPromptEN(params.Topic, params.Style, params.DurationMinutes)
	}

	return s.generateTwoPhase(ctx, outlinePrompt, scriptTemplate)
}

// GenerateFromExtraction is the same two phases with prompts built from
// previously extracted source material instead of a bare topic.
func (s *scriptGenerator) GenerateFromExtraction(ctx context.Context, params inbound.GenerateFromExtractionParams) (string, error) {
	digest := extractionDigest(params.Extraction, params.EnhancementPrompt)
	topic := params.Extraction.Summary
	if topic == "" {
		topic = "the source material provided"
	}

	outlinePrompt := outlinePromptFromContent(digest, params.Style, params.DurationMinutes)

	var scriptTemplate string
	if params.Language == "zh" {
		scriptTemplate = scriptPromptZH(topic, params.Style, params.DurationMinutes)
	} else {
		scriptTemplate = scriptPromptEN(topic, params.Style, params.DurationMinutes)
	}

	return s.generateTwoPhase(ctx, outlinePrompt, scriptTemplate)
}

func (s *scriptGenerator) generateTwoPhase(ctx context.Context, outlinePrompt, scriptTemplate string) (string, error) {
	outline, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:      outlinePrompt,
		Temperature: outlineTemperature,
		MaxTokens:   outlineMaxTokens,
	})
	if err != nil {
		s.logger.Error(err, "Outline generation failed")
		return "", fmt.Errorf("generate outline: %w", err)
	}
	if strings.TrimSpace(outline) == "" {
		s.logger.Error(outbound.ErrEmptyGeneration, "Outline came back empty, aborting script phase")
		return "", fmt.Errorf("generate outline: %w", outbound.ErrEmptyGeneration)
	}

	script, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:      strings.Replace(scriptTemplate, outlinePlaceholder, outline, 1),
		Temperature: scriptTemperature,
		MaxTokens:   scriptMaxTokens,
	})
	if err != nil {
		s.logger.Error(err, "Script generation failed")
		return "", fmt.Errorf("generate script: %w", err)
	}
	if strings.TrimSpace(script) == "" {
		return "", fmt.Errorf("generate script: %w", outbound.ErrEmptyGeneration)
	}

	s.logger.InfoWithFields("Podcast script generated", map[string]interface{}{
		"outline_chars": len(outline),
		"script_chars":  len(script),
	})

	return script, nil
}
