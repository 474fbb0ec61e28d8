package topic_test

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

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	"nc-news/internal/handler/http/respond"
	"nc-news/internal/handler/http/topic"
	topicUC "nc-news/internal/usecase/topic"
)

type stubRepo struct {
	topics    []*entity.Topic
	listErr   error
	createErr error
	got       *entity.Topic
}

func (s *stubRepo) List(context.Context) ([]*entity.Topic, error) { return s.topics, s.listErr }

func (s *stubRepo) Create(_ context.Context, t *entity.Topic) (*entity.Topic, error) {
	s.got = t
	if s.createErr != nil {
		return nil, s.createErr
	}
	return t, nil
}

func serve(stub *stubRepo, method, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	topic.Register(mux, topicUC.Service{Repo: stub})
	req := httptest.NewRequest(method, "/topics", strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestListHandler(t *testing.T) {
	stub := &stubRepo{topics: []*entity.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "cats", Description: "Not dogs"},
	}}

	rr := serve(stub, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"topics":[
		{"slug":"mitch","description":"The man, the Mitch, the legend"},
		{"slug":"cats","description":"Not dogs"}]}`, rr.Body.String())
}

func TestListHandler_StorageError(t *testing.T) {
	rr := serve(&stubRepo{listErr: errors.New("boom")}, http.MethodGet, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var env respond.Envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, "Internal server error", env.Msg)
	assert.Empty(t, env.Details)
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		createErr error
		wantCode  int
		wantJSON  string
	}{
		{
			name:     "with description",
			body:     `{"slug":"dogs","description":"Not cats"}`,
			wantCode: http.StatusCreated,
			wantJSON: `{"topic":{"slug":"dogs","description":"Not cats"}}`,
		},
		{
			name:     "description defaults to slug",
			body:     `{"slug":"dogs"}`,
			wantCode: http.StatusCreated,
			wantJSON: `{"topic":{"slug":"dogs","description":"dogs"}}`,
		},
		{
			name:     "missing slug",
			body:     `{"description":"x"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "duplicate",
			body:      `{"slug":"mitch"}`,
			createErr: apperror.BadRequest("Key (slug)=(mitch) already exists."),
			wantCode:  http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(&stubRepo{createErr: tt.createErr}, http.MethodPost, tt.body)
			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, rr.Body.String())
			}
		})
	}
}
