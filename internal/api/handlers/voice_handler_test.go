package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ai/backend/internal/api/handlers"
	"github.com/lifeline-ai/backend/pkg/config"
)

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioBase64, format string) (string, error) {
	return s.transcript, s.err
}

func voiceConfig() config.VoiceConfig {
	return config.VoiceConfig{SupportedFormats: []string{"wav", "mp3", "m4a", "flac"}}
}

func TestVoiceHandler_Process_WithTranscriber(t *testing.T) {
	triage := &stubTriageService{response: criticalResponse()}
	handler := handlers.NewVoiceHandler(&stubTranscriber{transcript: "my chest hurts"}, triage, voiceConfig())

	body := `{"audio":"aGVsbG8=","format":"wav"}`
	req := httptest.NewRequest("POST", "/api/v1/voice/process", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Process(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var result struct {
		Transcript string `json:"transcript"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "my chest hurts", result.Transcript)

	require.NotNil(t, triage.lastInput)
	assert.Equal(t, "my chest hurts", triage.lastInput.Content)
}

func TestVoiceHandler_Process_NoTranscriberDegrades(t *testing.T) {
	triage := &stubTriageService{response: criticalResponse()}
	handler := handlers.NewVoiceHandler(nil, triage, voiceConfig())

	req := httptest.NewRequest("POST", "/api/v1/voice/process", strings.NewReader(`{"audio":"aGVsbG8=","format":"mp3"}`))
	w := httptest.NewRecorder()

	handler.Process(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, triage.lastInput)
	assert.Contains(t, triage.lastInput.Content, "Voice input received")
}

func TestVoiceHandler_Process_TranscriberErrorDegrades(t *testing.T) {
	triage := &stubTriageService{response: criticalResponse()}
	handler := handlers.NewVoiceHandler(&stubTranscriber{err: errors.New("whisper unavailable")}, triage, voiceConfig())

	req := httptest.NewRequest("POST", "/api/v1/voice/process", strings.NewReader(`{"audio":"aGVsbG8=","format":"wav"}`))
	w := httptest.NewRecorder()

	handler.Process(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, triage.lastInput)
	assert.Contains(t, triage.lastInput.Content, "Unable to process voice input")
}

func TestVoiceHandler_Process_UnsupportedFormat(t *testing.T) {
	handler := handlers.NewVoiceHandler(nil, &stubTriageService{}, voiceConfig())

	req := httptest.NewRequest("POST", "/api/v1/voice/process", strings.NewReader(`{"audio":"aGVsbG8=","format":"ogg"}`))
	w := httptest.NewRecorder()

	handler.Process(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNSUPPORTED_FORMAT", env.Error.Code)
}

func TestVoiceHandler_Process_MissingAudio(t *testing.T) {
	handler := handlers.NewVoiceHandler(nil, &stubTriageService{}, voiceConfig())

	req := httptest.NewRequest("POST", "/api/v1/voice/process", strings.NewReader(`{"format":"wav"}`))
	w := httptest.NewRecorder()

	handler.Process(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
