package repository

import (
	"context"
	"errors"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

type TableRepository struct {
	DB *db.Postgres
}

const tableColumns = "id, table_number, capacity, location, status, features, created_by, created_at, updated_at"

type CreateTableInput struct {
	TableNumber int
	Capacity    int
	Location    domain.TableLocation
	Status      domain.TableStatus
	Features    []domain.TableFeature
	CreatedBy   int64
}

func (r TableRepository) Create(ctx context.Context, in CreateTableInput) (*domain.Table, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO tables (table_number, capacity, location, status, features, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6, now(), now())
		RETURNING `+tableColumns,
		in.TableNumber, in.Capacity, in.Location, in.Status, featureStrings(in.Features), in.CreatedBy)
	table, err := scanTable(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("table number already exists")
		}
		return nil, err
	}
	return table, nil
}

func (r TableRepository) Update(ctx context.Context, id int64, in CreateTableInput) (*domain.Table, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE tables
		SET table_number=$2, capacity=$3, location=$4, status=$5, features=$6, updated_at=now()
		WHERE id=$1
		RETURNING `+tableColumns,
		id, in.TableNumber, in.Capacity, in.Location, in.Status, featureStrings(in.Features))
	table, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("table not found")
		}
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("table number already exists")
		}
		return nil, err
	}
	return table, nil
}

func (r TableRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM tables WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("table not found")
	}
	return nil
}

func (r TableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE id=$1`, id)
	table, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("table not found")
		}
		return nil, err
	}
	return table, nil
}

func (r TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY table_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

// ListBookable feeds the availability engine: enough capacity and not under
// maintenance.
func (r TableRepository) ListBookable(ctx context.Context, minCapacity int) ([]domain.Table, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE capacity >= $1 AND status <> $2
		ORDER BY table_number
	`, minCapacity, domain.TableMaintenance)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

func collectTables(rows pgx.Rows) ([]domain.Table, error) {
	var out []domain.Table
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *table)
	}
	return out, rows.Err()
}

func scanTable(row interface {
	Scan(dest ...any) error
}) (*domain.Table, error) {
	var (
		t        domain.Table
		location string
		status   string
		features []string
	)
	if err := row.Scan(
		&t.ID,
		&t.TableNumber,
		&t.Capacity,
		&location,
		&status,
		&features,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Location = domain.TableLocation(location)
	t.Status = domain.TableStatus(status)
	for _, f := range features {
		t.Features = append(t.Features, domain.TableFeature(f))
	}
	return &t, nil
}

func featureStrings(features []domain.TableFeature) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		out = append(out, string(f))
	}
	return out
}
