package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	DB *db.Postgres
}

const reservationColumns = `id, user_id, table_id, party_size, reservation_date, start_time, end_time,
	duration_hours, status, customer_name, customer_email, customer_phone,
	special_requests, occasion, created_by, created_at, updated_at`

// Create persists a reservation. Reservations are never hard-deleted;
// cancellation is a status change. Overlap exclusion is enforced by the
// availability engine, not by a database constraint.
func (r ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	stored := *res
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO reservations
		(user_id, table_id, party_size, reservation_date, start_time, end_time, duration_hours,
		 status, customer_name, customer_email, customer_phone, special_requests, occasion,
		 created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, now(), now())
		RETURNING id, created_at, updated_at
	`, res.UserID, res.TableID, res.PartySize, res.Date, res.StartTime, res.EndTime, res.DurationHours,
		res.Status, res.CustomerName, res.CustomerEmail, res.CustomerPhone, res.SpecialRequests, res.Occasion,
		res.CreatedBy).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("reservation not found")
		}
		return nil, err
	}
	return res, nil
}

// ListActiveForDate returns all non-cancelled reservations for the calendar
// day, bucketed [date 00:00, date+1 00:00).
func (r ReservationRepository) ListActiveForDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE reservation_date >= $1 AND reservation_date < $2 AND status <> $3
		ORDER BY start_time
	`, day, day.AddDate(0, 0, 1), domain.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r ReservationRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+reservationColumns+` FROM reservations WHERE user_id=$1 ORDER BY reservation_date DESC, start_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListBetween powers the report export.
func (r ReservationRepository) ListBetween(ctx context.Context, from, to string) ([]domain.Reservation, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE reservation_date >= $1::date AND reservation_date <= $2::date
		ORDER BY reservation_date, start_time
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE reservations SET status=$2, updated_at=now() WHERE id=$1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("reservation not found")
	}
	return nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func scanReservation(row interface {
	Scan(dest ...any) error
}) (*domain.Reservation, error) {
	var (
		res      domain.Reservation
		status   string
		occasion string
	)
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.TableID,
		&res.PartySize,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.DurationHours,
		&status,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerPhone,
		&res.SpecialRequests,
		&occasion,
		&res.CreatedBy,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationStatus(status)
	res.Occasion = domain.Occasion(occasion)
	return &res, nil
}
