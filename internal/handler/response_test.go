package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", domain.BadRequest("party size must be at least 1"), http.StatusBadRequest},
		{"not found", domain.NotFound("reservation not found"), http.StatusNotFound},
		{"forbidden", domain.Forbidden("not allowed"), http.StatusForbidden},
		{"conflict", domain.Conflict("table not available at requested time"), http.StatusConflict},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)

			var body apiResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.err.Error(), body.Message)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.want, body.Error.Code)
		})
	}
}

func TestWriteJSONEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]any{"totalPrice": 3500})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Nil(t, body.Error)
}
