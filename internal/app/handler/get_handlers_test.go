package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/go-post-generator/internal/mocks"
	"github.com/atinyakov/go-post-generator/internal/models"
)

func TestPing(t *testing.T) {
	tests := []struct {
		name         string
		withDB       bool
		pingErr      error
		expectedCode int
		expectedData string
	}{
		{
			name:         "no database",
			expectedCode: http.StatusOK,
			expectedData: "pong",
		},
		{
			name:         "database up",
			withDB:       true,
			expectedCode: http.StatusOK,
			expectedData: "pong",
		},
		{
			name:         "database down",
			withDB:       true,
			pingErr:      errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedData: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			h := NewGet(nil, zap.NewNop())
			if tt.withDB {
				db := mocks.NewMockPinger(ctrl)
				db.EXPECT().PingContext(gomock.Any()).Return(tt.pingErr)
				h = NewGet(db, zap.NewNop())
			}

			rr := httptest.NewRecorder()
			h.Ping(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

			require.Equal(t, tt.expectedCode, rr.Code)

			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.expectedData, env.Data)
			assert.Equal(t, tt.expectedCode == http.StatusOK, env.Success)
			if env.Success {
				assert.Equal(t, models.NewEnvelope(http.StatusOK, "pong", "OK"), env)
			}
		})
	}
}
