package health

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"linekeeper/internal/store"
)

type fixedStats store.Stats

func (f fixedStats) Stats() store.Stats { return store.Stats(f) }

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name     string
		stats    store.Stats
		expected Response
	}{
		{
			name:     "empty store",
			stats:    store.Stats{},
			expected: Response{Status: "OK"},
		},
		{
			name:     "populated store",
			stats:    store.Stats{Lines: 4, Users: 2, HasDefault: true},
			expected: Response{Status: "OK", Lines: 4, Users: 2, HasDefault: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := NewHandler(fixedStats(tt.stats), slog.Default(), huma.Middlewares{})

			// Act
			output, err := handler.healthCheck(context.Background(), &Input{})

			// Assert
			require.NoError(t, err)
			require.NotNil(t, output)
			assert.Equal(t, tt.expected, output.Body)
		})
	}
}

func TestHandler_Route(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(fixedStats{Lines: 1, HasDefault: true}, slog.Default(), huma.Middlewares{}).SetupRoutes(api)

	resp := api.Get("/api/v1/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.EqualValues(t, 1, body["lines"])
	assert.EqualValues(t, 0, body["users"])
	assert.Equal(t, true, body["hasDefault"])
}

func TestNewHandler(t *testing.T) {
	// Arrange
	log := slog.Default()
	middleware := huma.Middlewares{}

	// Act
	handler := NewHandler(fixedStats{}, log, middleware)

	// Assert
	assert.NotNil(t, handler)
	assert.NotNil(t, handler.log)
	assert.NotNil(t, handler.middleware)
}
