package postgres

import (
	"context"
	"database/sql"
	"time"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	var deviceToken sql.NullString
	var createdOn time.Time
	query := `SELECT id, name, email, phone, role, password_hash, reputation, device_token, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.Reputation, &deviceToken, &createdOn)
	if err != nil {
		return nil, err
	}
	u.DeviceToken = deviceToken.String
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	var deviceToken sql.NullString
	var createdOn time.Time
	query := `SELECT id, name, email, phone, role, password_hash, reputation, device_token, created_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.Reputation, &deviceToken, &createdOn)
	if err != nil {
		return nil, err
	}
	u.DeviceToken = deviceToken.String
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}
