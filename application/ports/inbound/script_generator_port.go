package inbound

import (
	"context"

	"github.com/StudyXTeam23/aipodcast/domain"
)

type GenerateScriptParams struct {
	Topic           string
	Style           string
	DurationMinutes int
	Language        string
}

type GenerateFromExtractionParams struct {
	Extraction        domain.ExtractionResult
	EnhancementPrompt string
	Style             string
	DurationMinutes   int
	Language          string
}

type ScriptGeneratorPort interface {
	GenerateFromTopic(ctx context.Context, params GenerateScriptParams) (string, error)
	GenerateFromExtraction(ctx context.Context, params GenerateFromExtractionParams) (string, error)
}
