package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jocoandonob/voicebot/internal/ai"
	"github.com/jocoandonob/voicebot/internal/speech"
	"github.com/jocoandonob/voicebot/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAiService struct {
	reply      string
	err        error
	gotMessage string
	gotHistory []ai.HistoryEntry
}

func (f *fakeAiService) GetReply(_ context.Context, message string, history []ai.HistoryEntry) (string, error) {
	f.gotMessage = message
	f.gotHistory = history
	return f.reply, f.err
}

type fakeSpeechService struct {
	transcript    string
	transcribeErr error
	audioURL      string
	synthErr      error
	voices        []speech.Voice
	voicesErr     error
	gotVoiceID    string
	gotText       string
	synthCalls    int
}

func (f *fakeSpeechService) Transcribe(_ context.Context, file io.Reader, filename string) (string, error) {
	if f.transcribeErr != nil {
		return "", f.transcribeErr
	}
	return f.transcript, nil
}

func (f *fakeSpeechService) Synthesize(_ context.Context, text, voiceID string) (string, error) {
	f.synthCalls++
	f.gotText = text
	f.gotVoiceID = voiceID
	if f.synthErr != nil {
		return "", f.synthErr
	}
	return f.audioURL, nil
}

func (f *fakeSpeechService) Voices(context.Context) ([]speech.Voice, error) {
	return f.voices, f.voicesErr
}

func newTestRouter(t *testing.T, aiSvc *fakeAiService, speechSvc *fakeSpeechService) chi.Router {
	t.Helper()

	zl := logger.NewZapLogger(zap.NewNop().Sugar())
	r := chi.NewRouter()
	RegisterRoutes(
		r,
		NewVoiceHandler(aiSvc, speechSvc, zl),
		NewStatsHandler(stats.NewService(nil), zl),
		t.TempDir(),
		nil,
	)
	return r
}

func postJSON(t *testing.T, r chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestChat_EmptyMessage(t *testing.T) {
	r := newTestRouter(t, &fakeAiService{}, &fakeSpeechService{})

	rec := postJSON(t, r, "/api/voice/chat", map[string]string{"message": ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message is required", decodeBody(t, rec)["error"])
}

func TestChat_Success(t *testing.T) {
	aiSvc := &fakeAiService{reply: "The sky is blue."}
	speechSvc := &fakeSpeechService{audioURL: "/audio/0b6f157e.mp3"}
	r := newTestRouter(t, aiSvc, speechSvc)

	rec := postJSON(t, r, "/api/voice/chat", map[string]any{
		"message":  "Hello",
		"voice_id": "21m00Tcm4TlvDq8ikWAM",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["response"])
	assert.Regexp(t, regexp.MustCompile(`^/audio/.+\.mp3$`), body["audio_url"])
	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", speechSvc.gotVoiceID)
	assert.Equal(t, "The sky is blue.", speechSvc.gotText)
}

func TestChat_ForwardsHistory(t *testing.T) {
	aiSvc := &fakeAiService{reply: "ok"}
	r := newTestRouter(t, aiSvc, &fakeSpeechService{audioURL: "/audio/x.mp3"})

	rec := postJSON(t, r, "/api/voice/chat", map[string]any{
		"message": "next",
		"conversation_history": []map[string]string{
			{"role": "user", "content": "one"},
			{"role": "assistant", "content": "two"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, aiSvc.gotHistory, 2)
	assert.Equal(t, "one", aiSvc.gotHistory[0].Content)
	assert.Equal(t, "two", aiSvc.gotHistory[1].Content)
	assert.Equal(t, "next", aiSvc.gotMessage)
}

func TestChat_SynthesisFailureReturnsNoPartialReply(t *testing.T) {
	aiSvc := &fakeAiService{reply: "a reply that will never ship"}
	speechSvc := &fakeSpeechService{synthErr: errors.New("voice not found")}
	r := newTestRouter(t, aiSvc, speechSvc)

	rec := postJSON(t, r, "/api/voice/chat", map[string]string{"message": "Hello"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "voice not found")
	assert.NotContains(t, body, "response")
	assert.NotContains(t, body, "audio_url")
}

func TestChat_CompletionFailureSkipsSynthesis(t *testing.T) {
	aiSvc := &fakeAiService{err: errors.New("rate limited")}
	speechSvc := &fakeSpeechService{}
	r := newTestRouter(t, aiSvc, speechSvc)

	rec := postJSON(t, r, "/api/voice/chat", map[string]string{"message": "Hello"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Zero(t, speechSvc.synthCalls)
}

func TestTranscribe_NoFile(t *testing.T) {
	r := newTestRouter(t, &fakeAiService{}, &fakeSpeechService{})

	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", strings.NewReader(""))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, rec)["error"])
}

func TestTranscribe_Success(t *testing.T) {
	speechSvc := &fakeSpeechService{transcript: "hello from audio"}
	r := newTestRouter(t, &fakeAiService{}, speechSvc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "recording.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("webm-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello from audio", decodeBody(t, rec)["text"])
}

func TestTranscribe_UnsupportedFormat(t *testing.T) {
	speechSvc := &fakeSpeechService{transcribeErr: speech.ErrUnsupportedFormat}
	r := newTestRouter(t, &fakeAiService{}, speechSvc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported file format", decodeBody(t, rec)["error"])
}

func TestTextToSpeech_EmptyText(t *testing.T) {
	r := newTestRouter(t, &fakeAiService{}, &fakeSpeechService{})

	rec := postJSON(t, r, "/api/voice/text-to-speech", map[string]string{"text": "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Text is required", decodeBody(t, rec)["error"])
}

func TestTextToSpeech_Success(t *testing.T) {
	speechSvc := &fakeSpeechService{audioURL: "/audio/abc.mp3"}
	r := newTestRouter(t, &fakeAiService{}, speechSvc)

	rec := postJSON(t, r, "/api/voice/text-to-speech", map[string]string{
		"text":     "read this",
		"voice_id": "v2",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/audio/abc.mp3", decodeBody(t, rec)["audio_url"])
	assert.Equal(t, "v2", speechSvc.gotVoiceID)
}

func TestVoices_Success(t *testing.T) {
	speechSvc := &fakeSpeechService{voices: []speech.Voice{
		{VoiceID: "a", Name: "Alpha"},
		{VoiceID: "b", Name: "Beta"},
	}}
	r := newTestRouter(t, &fakeAiService{}, speechSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/voice/voices", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	voices, ok := body["voices"].([]any)
	require.True(t, ok)
	assert.Len(t, voices, 2)
}

func TestVoices_UpstreamError(t *testing.T) {
	speechSvc := &fakeSpeechService{voicesErr: errors.New("catalog down")}
	r := newTestRouter(t, &fakeAiService{}, speechSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/voice/voices", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "catalog down")
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &fakeAiService{}, &fakeSpeechService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}
