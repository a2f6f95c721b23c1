package delivery

import (
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// rate limit per IP on the API: generous enough for a single conversation,
// tight enough to keep a scripted client from burning the upstream quotas.
const (
	rateLimit  = 30
	ratePeriod = time.Minute
)

func RegisterRoutes(
	r chi.Router,
	hVoice *VoiceHandler,
	hStats *StatsHandler,
	audioDir string,
	webAssets fs.FS,
) {
	r.Route("/api/voice", func(vr chi.Router) {
		vr.Use(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(rateLimit, ratePeriod),
		)

		// --- pipeline ---
		vr.Post("/transcribe", hVoice.Transcribe)
		vr.Post("/chat", hVoice.Chat)
		vr.Post("/text-to-speech", hVoice.TextToSpeech)
		vr.Get("/voices", hVoice.Voices)

		// --- statistics ---
		vr.Get("/stats", hStats.GetStats)
		vr.Post("/track-visitor", hStats.TrackVisitor)
		vr.Post("/check-button-usage/{button_type}", hStats.CheckButtonUsage)
		vr.Post("/increment-button-usage/{button_type}", hStats.IncrementButtonUsage)
	})

	r.With(httputil.RecoverMiddleware).Get("/api/health", Health)

	r.With(httputil.RecoverMiddleware).Get("/audio/{filename}", serveAudio(audioDir))

	if webAssets != nil {
		r.With(httputil.RecoverMiddleware).
			Handle("/*", http.FileServer(http.FS(webAssets)))
	}
}

func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serveAudio serves generated files from the local output dir. Base-names the
// parameter so the handler can't be walked out of the directory.
func serveAudio(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(chi.URLParam(r, "filename"))
		http.ServeFile(w, r, filepath.Join(dir, name))
	}
}
