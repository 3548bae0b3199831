package outbound

import (
	"context"
	"errors"
)

// ErrEmptyGeneration indicates the capability answered successfully but
// produced no text. Callers treat this differently from transport failures.
var ErrEmptyGeneration = errors.New("text generation returned empty output")

type GenerateTextRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type TextGeneratorPort interface {
	Generate(ctx context.Context, req GenerateTextRequest) (string, error)
}
