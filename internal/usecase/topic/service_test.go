package topic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	topicUC "nc-news/internal/usecase/topic"
)

type stubRepo struct {
	data []*entity.Topic
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Topic, error) {
	return s.data, nil
}

func (s *stubRepo) Create(_ context.Context, t *entity.Topic) (*entity.Topic, error) {
	for _, existing := range s.data {
		if existing.Slug == t.Slug {
			return nil, apperror.BadRequest("Key (slug)=(%s) already exists.", t.Slug)
		}
	}
	s.data = append(s.data, t)
	return t, nil
}

func TestService_Create_DescriptionDefaultsToSlug(t *testing.T) {
	svc := topicUC.Service{Repo: &stubRepo{}}

	got, err := svc.Create(context.Background(), topicUC.CreateInput{Slug: "dogs"})
	require.NoError(t, err)
	assert.Equal(t, &entity.Topic{Slug: "dogs", Description: "dogs"}, got)
}

func TestService_Create_KeepsDescription(t *testing.T) {
	svc := topicUC.Service{Repo: &stubRepo{}}

	got, err := svc.Create(context.Background(), topicUC.CreateInput{Slug: "dogs", Description: "Not cats"})
	require.NoError(t, err)
	assert.Equal(t, "Not cats", got.Description)
}

func TestService_Create_RequiresSlug(t *testing.T) {
	svc := topicUC.Service{Repo: &stubRepo{}}

	_, err := svc.Create(context.Background(), topicUC.CreateInput{Description: "orphan"})
	require.True(t, apperror.IsBadRequest(err))
	assert.Equal(t, "Missing required field: slug", apperror.Normalize(err).Details)
}

func TestService_Create_Duplicate(t *testing.T) {
	repo := &stubRepo{data: []*entity.Topic{{Slug: "cats", Description: "Not dogs"}}}
	svc := topicUC.Service{Repo: repo}

	_, err := svc.Create(context.Background(), topicUC.CreateInput{Slug: "cats"})
	assert.True(t, apperror.IsBadRequest(err))
	assert.Len(t, repo.data, 1)
}

func TestService_List(t *testing.T) {
	repo := &stubRepo{data: []*entity.Topic{{Slug: "cats"}, {Slug: "mitch"}}}
	svc := topicUC.Service{Repo: repo}

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
