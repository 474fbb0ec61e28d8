package postgres

import (
	"context"
	"fmt"

	"nc-news/internal/domain/entity"
	"nc-news/internal/repository"
)

type TopicRepo struct {
	db DB
}

func NewTopicRepo(db DB) repository.TopicRepository {
	return &TopicRepo{db: db}
}

func (repo *TopicRepo) List(ctx context.Context) ([]*entity.Topic, error) {
	const stmt = `SELECT slug, description FROM topics ORDER BY slug`
	rows, err := repo.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	topics := make([]*entity.Topic, 0, 8)
	for rows.Next() {
		var t entity.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		topics = append(topics, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return topics, nil
}

// Create inserts the topic; a duplicate slug fails with the database's
// unique violation.
func (repo *TopicRepo) Create(ctx context.Context, topic *entity.Topic) (*entity.Topic, error) {
	const stmt = `INSERT INTO topics (slug, description) VALUES ($1, $2) RETURNING slug, description`

	var t entity.Topic
	if err := repo.db.QueryRowContext(ctx, stmt, topic.Slug, topic.Description).Scan(&t.Slug, &t.Description); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return &t, nil
}
