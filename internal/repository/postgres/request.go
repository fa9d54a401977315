package postgres

import (
	"context"
	"database/sql"
	"time"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `INSERT INTO requests (requester_id, description, category, address, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, req.RequesterID, req.Description, req.Category, req.Address, req.Status, now, now).Scan(&req.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	query := `SELECT id, requester_id, description, category, address, status, appointment_time, appointment_place, created_on, updated_on
	          FROM requests WHERE id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *requestRepository) GetWithAcceptedVolunteer(ctx context.Context, id int32) (*domain.Request, *int32, error) {
	query := `SELECT r.id, r.requester_id, r.description, r.category, r.address, r.status, r.appointment_time, r.appointment_place, r.created_on, r.updated_on,
	                 (SELECT volunteer_id FROM offers WHERE request_id = r.id AND status = 'accepted' LIMIT 1)
	          FROM requests r WHERE r.id = $1`
	req := &domain.Request{}
	var address sql.NullString
	var apptTime sql.NullTime
	var apptPlace sql.NullString
	var createdOn, updatedOn time.Time
	var volunteerID sql.NullInt32
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.Description, &req.Category, &address,
		&req.Status, &apptTime, &apptPlace, &createdOn, &updatedOn, &volunteerID,
	)
	if err != nil {
		return nil, nil, err
	}
	req.Address = address.String
	if apptTime.Valid {
		t := apptTime.Time
		req.AppointmentTime = &t
	}
	if apptPlace.Valid {
		p := apptPlace.String
		req.AppointmentPlace = &p
	}
	req.CreatedOn = createdOn.Format("2006-01-02")
	req.UpdatedOn = updatedOn.Format("2006-01-02")
	if !volunteerID.Valid {
		return req, nil, nil
	}
	vid := volunteerID.Int32
	return req, &vid, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error {
	query := `UPDATE requests SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
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

func (r *requestRepository) SetAppointment(ctx context.Context, id int32, at *time.Time, place *string) error {
	query := `UPDATE requests SET appointment_time = $1, appointment_place = $2, updated_on = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, at, place, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *requestRepository) ListUpcomingAppointments(ctx context.Context) ([]domain.UpcomingAppointment, error) {
	query := `SELECT r.id, r.requester_id, r.appointment_time,
	                 (SELECT volunteer_id FROM offers WHERE request_id = r.id AND status = 'accepted' LIMIT 1)
	          FROM requests r
	          WHERE r.status = 'in_progress' AND r.appointment_time IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []domain.UpcomingAppointment
	for rows.Next() {
		var a domain.UpcomingAppointment
		var volunteerID sql.NullInt32
		if err := rows.Scan(&a.RequestID, &a.RequesterID, &a.AppointmentTime, &volunteerID); err != nil {
			return nil, err
		}
		if volunteerID.Valid {
			vid := volunteerID.Int32
			a.VolunteerID = &vid
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func scanRequest(row *sql.Row) (*domain.Request, error) {
	req := &domain.Request{}
	var address sql.NullString
	var apptTime sql.NullTime
	var apptPlace sql.NullString
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.Description, &req.Category, &address,
		&req.Status, &apptTime, &apptPlace, &createdOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	req.Address = address.String
	if apptTime.Valid {
		t := apptTime.Time
		req.AppointmentTime = &t
	}
	if apptPlace.Valid {
		p := apptPlace.String
		req.AppointmentPlace = &p
	}
	req.CreatedOn = createdOn.Format("2006-01-02")
	req.UpdatedOn = updatedOn.Format("2006-01-02")
	return req, nil
}
