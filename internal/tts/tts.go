package tts

import "context"

// Provider defines the interface for text-to-speech services. Implementations
// return a complete mono PCM WAV so the alignment core can segment it without
// knowing which service produced it.
type Provider interface {
	Synthesize(ctx context.Context, text, stylePrompt string) ([]byte, error)
}
