// Package user provides the use cases of users.
package user

import (
	"context"
	"fmt"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	"nc-news/internal/observability/metrics"
	"nc-news/internal/repository"
)

// CreateInput represents the payload of POST /users. AvatarURL is optional.
type CreateInput struct {
	Username  string
	Name      string
	AvatarURL string
}

type Service struct {
	Repo repository.UserRepository
}

func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Repo.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, apperror.MissingField("username")
	}
	if in.Name == "" {
		return nil, apperror.MissingField("name")
	}

	created, err := s.Repo.Create(ctx, &entity.User{
		Username:  in.Username,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RecordCreated("user")
	return created, nil
}
