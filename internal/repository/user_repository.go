package repository

import (
	"context"

	"nc-news/internal/domain/entity"
)

type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	// Get returns the user or NotFound.
	Get(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
}
