package postgres

import (
	"context"
	"fmt"

	"nc-news/internal/domain/entity"
	"nc-news/internal/pkg/query"
	"nc-news/internal/repository"
)

type UserRepo struct {
	db DB
}

func NewUserRepo(db DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	const stmt = `SELECT username, name, avatar_url FROM users ORDER BY username`
	rows, err := repo.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 8)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Username, &u.Name, nullable(&u.AvatarURL)); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return users, nil
}

func (repo *UserRepo) Get(ctx context.Context, username string) (*entity.User, error) {
	const stmt = `SELECT username, name, avatar_url FROM users WHERE username = $1`

	var u entity.User
	err := repo.db.QueryRowContext(ctx, stmt, username).Scan(&u.Username, &u.Name, nullable(&u.AvatarURL))
	if err != nil {
		return nil, fmt.Errorf("Get: %w", noRowsAsNotFound(err, query.TableUsers, "username", username))
	}
	return &u, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	const stmt = `
INSERT INTO users (username, name, avatar_url)
VALUES ($1, $2, $3)
RETURNING username, name, avatar_url`

	var u entity.User
	err := repo.db.QueryRowContext(ctx, stmt, user.Username, user.Name, user.AvatarURL).
		Scan(&u.Username, &u.Name, nullable(&u.AvatarURL))
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return &u, nil
}
