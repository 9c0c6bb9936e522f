package repository

import (
	"context"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

type FeedbackRepository struct {
	DB *db.Postgres
}

func (r FeedbackRepository) Create(ctx context.Context, f domain.Feedback) (*domain.Feedback, error) {
	stored := f
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO feedback (user_id, rating, comment, created_at)
		VALUES ($1,$2,$3, now())
		RETURNING id, created_at
	`, f.UserID, f.Rating, f.Comment).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r FeedbackRepository) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, user_id, rating, comment, created_at
		FROM feedback
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
