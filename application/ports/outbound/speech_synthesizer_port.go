package outbound

import "context"

type DialogueLine struct {
	Text    string
	VoiceID string
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, text string, voiceID string) ([]byte, error)
	SynthesizeDialogue(ctx context.Context, lines []DialogueLine) ([]byte, error)
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
