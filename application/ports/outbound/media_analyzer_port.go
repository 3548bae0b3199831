package outbound

import "context"

// MediaAnalyzerPort answers a prompt about an attached media payload, or
// about a remotely hosted one addressed by URL.
type MediaAnalyzerPort interface {
	Analyze(ctx context.Context, prompt string, media []byte, mimeType string) (string, error)
	AnalyzeByReference(ctx context.Context, prompt string, url string, mimeType string) (string, error)
}
