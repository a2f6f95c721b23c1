package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jocoandonob/voicebot/internal/notificator"
	"github.com/jocoandonob/voicebot/internal/storage"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

var allowedUploadExt = map[string]bool{
	".webm": true,
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
}

// Service — one service for both directions (STT and TTS).
type Service struct {
	stt          STTClient
	tts          TTSClient
	store        storage.AudioStore
	uploadsDir   string
	defaultVoice string
	notifier     notificator.Notificator
}

func NewService(
	stt STTClient,
	tts TTSClient,
	store storage.AudioStore,
	uploadsDir string,
	defaultVoice string,
	notifier notificator.Notificator,
) *Service {
	return &Service{
		stt:          stt,
		tts:          tts,
		store:        store,
		uploadsDir:   uploadsDir,
		defaultVoice: defaultVoice,
		notifier:     notifier,
	}
}

// Transcribe saves the upload under a unique temp name, runs STT over it and
// returns the transcript. The temp file is removed on every exit path.
func (s *Service) Transcribe(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExt[ext] {
		return "", ErrUnsupportedFormat
	}

	tmpPath := filepath.Join(s.uploadsDir, uuid.NewString()+ext)

	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", fmt.Errorf("save upload: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	text, err := s.stt.Transcribe(ctx, tmpPath)
	if err != nil {
		s.notifier.Notify(ctx, err, "transcription failed")
		return "", err
	}
	return text, nil
}

// Synthesize converts text to speech and stores the result under a fresh
// filename. Identical inputs always produce distinct files.
func (s *Service) Synthesize(ctx context.Context, text, voiceID string) (string, error) {
	if voiceID == "" {
		voiceID = s.defaultVoice
	}

	stream, err := s.tts.Synthesize(ctx, text, voiceID)
	if err != nil {
		s.notifier.Notify(ctx, err, "text-to-speech failed, voice "+voiceID)
		return "", err
	}
	defer stream.Close()

	audioURL, err := s.store.Save(ctx, uuid.NewString()+".mp3", stream)
	if err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}
	return audioURL, nil
}

func (s *Service) Voices(ctx context.Context) ([]Voice, error) {
	return s.tts.Voices(ctx)
}

func (s *Service) DefaultVoiceID() string { return s.defaultVoice }
