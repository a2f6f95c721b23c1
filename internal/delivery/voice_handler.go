package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/jocoandonob/voicebot/internal/ai"
	"github.com/jocoandonob/voicebot/internal/ports"
	"github.com/jocoandonob/voicebot/internal/speech"
)

const maxUploadBytes = 20 << 20

type VoiceHandler struct {
	aiService     ports.AiService
	speechService ports.SpeechService
	log           *logger.ZapLogger
}

func NewVoiceHandler(aiService ports.AiService, speechService ports.SpeechService, log *logger.ZapLogger) *VoiceHandler {
	return &VoiceHandler{
		aiService:     aiService,
		speechService: speechService,
		log:           log,
	}
}

func (h *VoiceHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	text, err := h.speechService.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, speech.ErrUnsupportedFormat) {
			respondError(w, http.StatusBadRequest, "Unsupported file format")
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcription failed", Error: err})
		respondError(w, http.StatusBadGateway, "Error transcribing audio: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

type chatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []ai.HistoryEntry `json:"conversation_history"`
	VoiceID             string            `json:"voice_id"`
}

type chatResponse struct {
	Response string `json:"response"`
	AudioURL string `json:"audio_url"`
}

// Chat is the full pipeline: completion first, then synthesis, then storage.
// Any failed step aborts the whole request — the reply text is never returned
// without its audio.
func (h *VoiceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.aiService.GetReply(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "chat completion failed", Error: err})
		respondError(w, http.StatusBadGateway, "Error processing chat: "+err.Error())
		return
	}

	audioURL, err := h.speechService.Synthesize(r.Context(), reply, req.VoiceID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "speech synthesis failed", Error: err})
		respondError(w, http.StatusBadGateway, "Error processing chat: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{Response: reply, AudioURL: audioURL})
}

type ttsRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

func (h *VoiceHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "Text is required")
		return
	}

	audioURL, err := h.speechService.Synthesize(r.Context(), req.Text, req.VoiceID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "speech synthesis failed", Error: err})
		respondError(w, http.StatusBadGateway, "Error converting text to speech: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"audio_url": audioURL})
}

func (h *VoiceHandler) Voices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.speechService.Voices(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "voice catalog fetch failed", Error: err})
		respondError(w, http.StatusBadGateway, "Error fetching voices: "+err.Error())
		return
	}

	if voices == nil {
		voices = []speech.Voice{}
	}
	respondJSON(w, http.StatusOK, map[string][]speech.Voice{"voices": voices})
}
