package models_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-post-generator/internal/models"
)

func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    models.Envelope
	}{
		{
			name:    "ok",
			status:  http.StatusOK,
			message: "Generated Post Successfully!",
			want:    models.Envelope{StatusCode: 200, Message: "Generated Post Successfully!", Success: true},
		},
		{
			name:    "redirect is still a success",
			status:  http.StatusPermanentRedirect,
			message: "moved",
			want:    models.Envelope{StatusCode: 308, Message: "moved", Success: true},
		},
		{
			name:    "client error",
			status:  http.StatusBadRequest,
			message: "All fields required!",
			want:    models.Envelope{StatusCode: 400, Message: "All fields required!", Success: false},
		},
		{
			name:   "default message",
			status: http.StatusInternalServerError,
			want:   models.Envelope{StatusCode: 500, Message: models.DefaultMessage, Success: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, models.NewEnvelope(tt.status, "", tt.message))
		})
	}
}

func TestEnvelopeJSON(t *testing.T) {
	b, err := json.Marshal(models.NewEnvelope(http.StatusInternalServerError, "", "Internal Server Error"))
	require.NoError(t, err)
	require.JSONEq(t, `{"statusCode":500,"data":"","message":"Internal Server Error","success":false}`, string(b))
}

func TestGenerationRequest(t *testing.T) {
	var req models.GenerationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"blogUrl":"https://example.com/post","platform":"linkedin","tone":"witty"}`), &req))
	require.True(t, req.Complete())

	req.Tone = ""
	require.False(t, req.Complete())
}
