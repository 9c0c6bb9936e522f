package repository

import (
	"context"
	"errors"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	DB *db.Postgres
}

// Create inserts an empty cart and, when owned, points the user at it. A
// partial unique index on carts(customer_id) keeps one active cart per user.
func (r CartRepository) Create(ctx context.Context, customerID *int64) (*domain.Cart, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cart domain.Cart
	err = tx.QueryRow(ctx, `
		INSERT INTO carts (customer_id, total_price, created_at, updated_at)
		VALUES ($1, 0, now(), now())
		RETURNING id, customer_id, total_price, created_at, updated_at
	`, customerID).Scan(&cart.ID, &cart.CustomerID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("customer already has a cart")
		}
		return nil, err
	}

	if customerID != nil {
		if _, err := tx.Exec(ctx, `UPDATE users SET cart_id=$1, updated_at=now() WHERE id=$2`, cart.ID, *customerID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r CartRepository) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, customer_id, total_price, created_at, updated_at FROM carts WHERE id=$1
	`, id).Scan(&cart.ID, &cart.CustomerID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("cart not found")
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r CartRepository) GetByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, customer_id, total_price, created_at, updated_at FROM carts WHERE customer_id=$1
	`, customerID).Scan(&cart.ID, &cart.CustomerID, &cart.TotalPrice, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("cart not found")
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveItems replaces the item list and the derived total in one
// transaction, so the cached total can never drift from the items it was
// computed for.
func (r CartRepository) SaveItems(ctx context.Context, cartID int64, items []domain.CartItem, total int64) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE carts SET total_price=$2, updated_at=now() WHERE id=$1`, cartID, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cart not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return err
	}
	for pos, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, menu_item_id, quantity, position)
			VALUES ($1,$2,$3,$4)
		`, cartID, item.MenuItemID, item.Quantity, pos)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r CartRepository) loadItems(ctx context.Context, cart *domain.Cart) error {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT menu_item_id, quantity FROM cart_items WHERE cart_id=$1 ORDER BY position
	`, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.MenuItemID, &item.Quantity); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}
