package speech

import (
	"context"
	"io"
)

type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

// === Interfaces ===

type STTClient interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

type TTSClient interface {
	Synthesize(ctx context.Context, text, voiceID string) (io.ReadCloser, error)
	Voices(ctx context.Context) ([]Voice, error)
}
