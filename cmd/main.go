package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/jocoandonob/voicebot/internal/ai"
	"github.com/jocoandonob/voicebot/internal/config"
	"github.com/jocoandonob/voicebot/internal/delivery"
	"github.com/jocoandonob/voicebot/internal/notificator"
	"github.com/jocoandonob/voicebot/internal/speech"
	"github.com/jocoandonob/voicebot/internal/stats"
	"github.com/jocoandonob/voicebot/internal/storage"
	"github.com/jocoandonob/voicebot/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// OPTIONAL SUBSYSTEMS (stats DB, telegram notifier)
	// =========================================================================

	var statsRepo stats.Repo
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("db ping failed: %v", err)
		}
		cancel()

		repo := stats.NewPostgresRepo(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("stats schema: %v", err)
		}
		statsRepo = repo
	} else {
		log.Println("DATABASE_URL not set, visitor statistics disabled")
	}

	var notifier notificator.Notificator = notificator.Noop{}
	if cfg.TelegramToken != "" && cfg.AdminChatID != 0 {
		tg, err := notificator.NewTelegramNotifier(cfg.TelegramToken, cfg.AdminChatID)
		if err != nil {
			log.Printf("telegram notifier init failed, continuing without: %v", err)
		} else {
			notifier = tg
		}
	}

	// =========================================================================
	// AUDIO STORE
	// =========================================================================

	var audioStore storage.AudioStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(cfg.S3)
		if err != nil {
			log.Fatalf("failed to init s3 store: %v", err)
		}
		audioStore = s3Store
	} else {
		localStore, err := storage.NewLocalStore(cfg.AudioOutputDir)
		if err != nil {
			log.Fatalf("failed to init local store: %v", err)
		}
		audioStore = localStore
	}

	// =========================================================================
	// CLIENTS (AI / TTS)
	// =========================================================================

	openAIClient := ai.NewOpenAIClient(cfg.OpenAIKey)
	ttsClient := speech.NewElevenLabsClient(cfg.ElevenLabsKey)

	// =========================================================================
	// SERVICES
	// =========================================================================

	aiService := ai.NewService(openAIClient, notifier)

	speechService := speech.NewService(
		openAIClient, // Whisper
		ttsClient,    // ElevenLabs
		audioStore,
		cfg.UploadsDir,
		cfg.DefaultVoiceID,
		notifier,
	)

	statsService := stats.NewService(statsRepo)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	voiceHandler := delivery.NewVoiceHandler(aiService, speechService, zl)
	statsHandler := delivery.NewStatsHandler(statsService, zl)

	webAssets, err := web.Assets()
	if err != nil {
		log.Fatalf("failed to load web assets: %v", err)
	}

	delivery.RegisterRoutes(r, voiceHandler, statsHandler, cfg.AudioOutputDir, webAssets)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voicebot",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
