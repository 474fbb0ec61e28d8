package payload_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nc-news/internal/apperror"
	"nc-news/internal/handler/http/payload"
)

func TestDecode(t *testing.T) {
	type body struct {
		Title *string `json:"title"`
	}

	t.Run("object", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","unknown":1}`))
		require.NoError(t, payload.Decode(r, &b))
		require.NotNil(t, b.Title)
		assert.Equal(t, "x", *b.Title)
	})

	t.Run("empty body", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		require.NoError(t, payload.Decode(r, &b))
		assert.Nil(t, b.Title)
	})

	t.Run("malformed", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		err := payload.Decode(r, &b)
		assert.True(t, apperror.IsBadRequest(err))
		assert.Equal(t, "Invalid request body", apperror.Normalize(err).Details)
	})

	t.Run("wrong type", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":5}`))
		assert.True(t, apperror.IsBadRequest(payload.Decode(r, &b)))
	})

	t.Run("too large", func(t *testing.T) {
		var b body
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"`+strings.Repeat("a", 100)+`"}`))
		r.Body = http.MaxBytesReader(w, r.Body, 10)
		err := payload.Decode(r, &b)
		assert.Equal(t, "Request body too large", apperror.Normalize(err).Details)
	})
}

func TestIncVotes(t *testing.T) {
	tests := []struct {
		raw     json.RawMessage
		want    int64
		wantNil bool
		wantErr bool
	}{
		{raw: nil, wantNil: true},
		{raw: json.RawMessage(`6`), want: 6},
		{raw: json.RawMessage(`-100`), want: -100},
		{raw: json.RawMessage(`0`), want: 0},
		{raw: json.RawMessage(`1.0`), want: 1},
		{raw: json.RawMessage(`-3.00`), want: -3},
		{raw: json.RawMessage(`1e2`), want: 100},
		{raw: json.RawMessage(`2147483647`), want: 2147483647},
		{raw: json.RawMessage(`-2147483648`), want: -2147483648},
		{raw: json.RawMessage(`3000000000`), wantErr: true},
		{raw: json.RawMessage(`3e9`), wantErr: true},
		{raw: json.RawMessage(`-2147483649`), wantErr: true},
		{raw: json.RawMessage(`"6"`), wantErr: true},
		{raw: json.RawMessage(`6.5`), wantErr: true},
		{raw: json.RawMessage(`null`), wantErr: true},
		{raw: json.RawMessage(`"not-a-number"`), wantErr: true},
		{raw: json.RawMessage(`true`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.raw), func(t *testing.T) {
			got, err := payload.IncVotes(tt.raw)
			if tt.wantErr {
				require.True(t, apperror.IsBadRequest(err), "err=%v", err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}
