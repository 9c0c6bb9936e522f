package repository

import (
	"context"
	"errors"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

type MenuRepository struct {
	DB *db.Postgres
}

const menuColumns = "id, name, description, price, category, is_available, created_at, updated_at"

type CreateMenuItemInput struct {
	Name        string
	Description string
	Price       int64
	Category    domain.MenuCategory
	IsAvailable bool
}

func (r MenuRepository) Create(ctx context.Context, in CreateMenuItemInput) (*domain.MenuItem, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category, is_available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING `+menuColumns,
		in.Name, in.Description, in.Price, in.Category, in.IsAvailable)
	item, err := scanMenuItem(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("menu item name already exists")
		}
		return nil, err
	}
	return item, nil
}

func (r MenuRepository) Update(ctx context.Context, id int64, in CreateMenuItemInput) (*domain.MenuItem, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE menu_items
		SET name=$2, description=$3, price=$4, category=$5, is_available=$6, updated_at=now()
		WHERE id=$1
		RETURNING `+menuColumns,
		id, in.Name, in.Description, in.Price, in.Category, in.IsAvailable)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("menu item not found")
		}
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("menu item name already exists")
		}
		return nil, err
	}
	return item, nil
}

func (r MenuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("menu item not found")
	}
	return nil
}

func (r MenuRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id=$1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("menu item not found")
		}
		return nil, err
	}
	return item, nil
}

// GetByIDs is the batched read used by the pricing engine. Missing ids are
// simply absent from the result.
func (r MenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Pool.Query(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func (r MenuRepository) List(ctx context.Context, onlyAvailable bool) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items ORDER BY category, name`
	if onlyAvailable {
		query = `SELECT ` + menuColumns + ` FROM menu_items WHERE is_available ORDER BY category, name`
	}
	rows, err := r.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func collectMenuItems(rows pgx.Rows) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func scanMenuItem(row interface {
	Scan(dest ...any) error
}) (*domain.MenuItem, error) {
	var (
		m        domain.MenuItem
		category string
	)
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Price,
		&category,
		&m.IsAvailable,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.Category = domain.MenuCategory(category)
	return &m, nil
}
