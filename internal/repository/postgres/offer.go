package postgres

import (
	"context"
	"database/sql"
	"time"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/repository"
)

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, o *domain.Offer) error {
	query := `INSERT INTO offers (request_id, volunteer_id, message, status, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, o.RequestID, o.VolunteerID, o.Message, o.Status, time.Now()).Scan(&o.ID)
}

func (r *offerRepository) GetByID(ctx context.Context, id int32) (*domain.Offer, error) {
	o := &domain.Offer{}
	var createdOn time.Time
	query := `SELECT id, request_id, volunteer_id, message, status, created_on FROM offers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.RequestID, &o.VolunteerID, &o.Message, &o.Status, &createdOn)
	if err != nil {
		return nil, err
	}
	o.CreatedOn = createdOn.Format("2006-01-02")
	return o, nil
}

// Accept runs the accept cascade as a single transaction. The request row is
// locked first: concurrent accepts on sibling offers then serialize on that
// one row in the same order instead of deadlocking across offer rows, and
// the loser sees zero rows on the guard and rolls back with ErrConflict.
// Every UPDATE carries its expected prior state in the WHERE clause.
func (r *offerRepository) Accept(ctx context.Context, offerID, requestID int32) ([]domain.Offer, error) {
	logger.DatabaseCall("TX", "offers", "offer_id", offerID, "request_id", requestID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE requests SET status = 'in_progress', updated_on = $1 WHERE id = $2 AND status = 'open'`,
		time.Now(), requestID)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, repository.ErrConflict
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE offers SET status = 'accepted' WHERE id = $1 AND status = 'pending'`, offerID)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, repository.ErrConflict
	}

	rows, err := tx.QueryContext(ctx,
		`UPDATE offers SET status = 'rejected'
		 WHERE request_id = $1 AND id <> $2 AND status = 'pending'
		 RETURNING id, request_id, volunteer_id, message, status, created_on`,
		requestID, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rejected []domain.Offer
	for rows.Next() {
		var o domain.Offer
		var createdOn time.Time
		if err := rows.Scan(&o.ID, &o.RequestID, &o.VolunteerID, &o.Message, &o.Status, &createdOn); err != nil {
			return nil, err
		}
		o.CreatedOn = createdOn.Format("2006-01-02")
		rejected = append(rejected, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("TX", int64(len(rejected))+2, nil, "offer_id", offerID)
	return rejected, nil
}

func (r *offerRepository) Reject(ctx context.Context, offerID int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE offers SET status = 'rejected' WHERE id = $1 AND status = 'pending'`, offerID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrConflict
	}
	return nil
}
