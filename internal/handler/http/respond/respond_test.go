package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "a1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "a1", decode(t, rec)["id"])
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		expected string
	}{
		{
			name:     "validation error is echoed",
			code:     http.StatusBadRequest,
			err:      errors.New("topic is required"),
			expected: "topic is required",
		},
		{
			name:     "not found is echoed",
			code:     http.StatusNotFound,
			err:      errors.New("article not found"),
			expected: "article not found",
		},
		{
			name:     "internal detail is masked",
			code:     http.StatusBadRequest,
			err:      errors.New("pq: connection refused host=10.0.0.3"),
			expected: "internal server error",
		},
		{
			name:     "5xx never echoes even safe-looking text",
			code:     http.StatusInternalServerError,
			err:      errors.New("topic is required"),
			expected: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.expected, decode(t, rec)["error"])
		})
	}
}

func TestSafeErrorNilIsNoop(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, nil)

	assert.Empty(t, rec.Body.String())
}

func TestAppError(t *testing.T) {
	inner := errors.New("provider timeout")
	appErr := NewAppError(http.StatusBadGateway, "article generation failed", inner)

	assert.Equal(t, "provider timeout", appErr.Error())
	assert.ErrorIs(t, appErr, inner)

	noInner := NewAppError(http.StatusConflict, "already exists", nil)
	assert.Equal(t, "already exists", noInner.Error())
}

func TestAppErrorOr(t *testing.T) {
	t.Run("app error wins over fallback code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := NewAppError(http.StatusBadGateway, "article generation failed", errors.New("provider timeout"))

		AppErrorOr(rec, http.StatusInternalServerError, err)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "article generation failed", decode(t, rec)["error"])
	})

	t.Run("wrapped app error is still found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := NewAppError(http.StatusNotFound, "article not found", nil)

		AppErrorOr(rec, http.StatusInternalServerError, errors.Join(errors.New("lookup"), err))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("plain error falls back to SafeError", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AppErrorOr(rec, http.StatusInternalServerError, errors.New("pq: bad connection"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decode(t, rec)["error"])
	})
}
