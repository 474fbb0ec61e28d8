package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Zero(t, w.BytesWritten())
	assert.False(t, w.HeaderWritten())
}

func TestWrap_Idempotent(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Same(t, w, Wrap(w))
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  int
	}{
		{"created", []int{http.StatusCreated}, http.StatusCreated},
		{"not found", []int{http.StatusNotFound}, http.StatusNotFound},
		{"first call wins", []int{http.StatusBadRequest, http.StatusInternalServerError}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := Wrap(rec)
			for _, c := range tt.codes {
				w.WriteHeader(c)
			}
			assert.Equal(t, tt.want, w.StatusCode())
			assert.Equal(t, tt.want, rec.Code)
			assert.True(t, w.HeaderWritten())
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte(`{"topics":`))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	_, err = w.Write([]byte(`[]}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.StatusCode(), "implicit 200")
	assert.True(t, w.HeaderWritten())
	assert.Equal(t, 13, w.BytesWritten())
	assert.Equal(t, `{"topics":[]}`, rec.Body.String())
}

func TestResponseWriter_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	w.WriteHeader(http.StatusNoContent)

	assert.Equal(t, http.StatusNoContent, w.StatusCode())
	assert.Zero(t, w.BytesWritten())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	assert.Same(t, rec, w.Unwrap())

	// ResponseController reaches the recorder's Flush through Unwrap.
	require.NoError(t, http.NewResponseController(w).Flush())
	assert.True(t, rec.Flushed)
}
