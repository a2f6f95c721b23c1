package config

import (
	"fmt"
	"os"
	"strconv"
)

// Rachel — always available on every ElevenLabs account.
const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// Enabled reports whether generated audio should go to S3 instead of local disk.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Config is built once in main and injected everywhere; request handlers
// never read the environment themselves.
type Config struct {
	Port           string
	OpenAIKey      string
	ElevenLabsKey  string
	DefaultVoiceID string

	UploadsDir     string
	AudioOutputDir string

	// Optional: visitor/usage statistics.
	DatabaseURL string

	// Optional: S3-backed audio store.
	S3 S3Config

	// Optional: Telegram admin error notifications.
	TelegramToken string
	AdminChatID   int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ElevenLabsKey:  os.Getenv("ELEVENLABS_API_KEY"),
		DefaultVoiceID: getenv("DEFAULT_VOICE_ID", defaultVoiceID),
		UploadsDir:     getenv("UPLOADS_DIR", "static/uploads"),
		AudioOutputDir: getenv("AUDIO_OUTPUT_DIR", "static/audio"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
		},
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if cfg.ElevenLabsKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY is not set")
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
		cfg.AdminChatID = id
	}

	for _, dir := range []string{cfg.UploadsDir, cfg.AudioOutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
