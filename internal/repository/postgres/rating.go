package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/repository"
)

type ratingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts the rating. A unique violation on (request_id, reviewer_id)
// means a concurrent submission from the same reviewer won the insert; it is
// reported as ErrConflict so the caller can fall back to the stored row.
func (r *ratingRepository) Create(ctx context.Context, rt *domain.Rating) error {
	query := `INSERT INTO ratings (request_id, reviewer_id, ratee_id, score, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rt.RequestID, rt.ReviewerID, rt.RateeID, rt.Score, rt.Comment, time.Now()).Scan(&rt.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrConflict
	}
	return err
}

func (r *ratingRepository) GetByReviewer(ctx context.Context, requestID, reviewerID int32) (*domain.Rating, error) {
	rt := &domain.Rating{}
	var comment sql.NullString
	var createdOn time.Time
	query := `SELECT id, request_id, reviewer_id, ratee_id, score, comment, created_on
	          FROM ratings WHERE request_id = $1 AND reviewer_id = $2`
	err := r.db.QueryRowContext(ctx, query, requestID, reviewerID).Scan(&rt.ID, &rt.RequestID, &rt.ReviewerID, &rt.RateeID, &rt.Score, &comment, &createdOn)
	if err != nil {
		return nil, err
	}
	rt.Comment = comment.String
	rt.CreatedOn = createdOn.Format("2006-01-02")
	return rt, nil
}
