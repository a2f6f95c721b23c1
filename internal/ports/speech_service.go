package ports

import (
	"context"
	"io"

	"github.com/jocoandonob/voicebot/internal/speech"
)

type SpeechService interface {
	Transcribe(ctx context.Context, file io.Reader, filename string) (string, error)
	Synthesize(ctx context.Context, text, voiceID string) (audioURL string, err error)
	Voices(ctx context.Context) ([]speech.Voice, error)
}
