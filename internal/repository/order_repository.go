package repository

import (
	"context"
	"errors"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	DB *db.Postgres
}

const orderColumns = "id, customer_id, customer_name, order_type, status, payment_status, total_price, customer_notes, created_at, updated_at"

// Create writes the order and its snapshotted lines in one transaction.
// Orders are never deleted.
func (r OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	stored := *o
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, customer_name, order_type, status, payment_status, total_price, customer_notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now(), now())
		RETURNING id, created_at, updated_at
	`, o.CustomerID, o.CustomerName, o.OrderType, o.Status, o.PaymentStatus, o.TotalPrice, o.CustomerNotes).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}

	stored.Items = make([]domain.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, stored.ID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice).Scan(&id)
		if err != nil {
			return nil, err
		}
		item.ID = id
		stored.Items = append(stored.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("order not found")
		}
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectWithItems(ctx, rows)
}

func (r OrderRepository) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectWithItems(ctx, rows)
}

// ListCreatedBetween powers the report export.
func (r OrderRepository) ListCreatedBetween(ctx context.Context, from, to string) ([]domain.Order, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE created_at >= $1::date AND created_at < ($2::date + interval '1 day')
		ORDER BY created_at, id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectWithItems(ctx, rows)
}

// UpdateStatus touches only the provided fields plus updated_at. The total
// is deliberately untouchable here.
func (r OrderRepository) UpdateStatus(ctx context.Context, id int64, status *domain.OrderStatus, payment *domain.PaymentStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE orders
		SET status = COALESCE($2, status),
		    payment_status = COALESCE($3, payment_status),
		    updated_at = now()
		WHERE id=$1
	`, id, status, payment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("order not found")
	}
	return nil
}

func (r OrderRepository) collectWithItems(ctx context.Context, rows pgx.Rows) ([]domain.Order, error) {
	var out []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r OrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, menu_item_id, name, quantity, unit_price
		FROM order_items WHERE order_id=$1 ORDER BY id
	`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.MenuItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*domain.Order, error) {
	var (
		o         domain.Order
		orderType string
		status    string
		payment   string
	)
	if err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&orderType,
		&status,
		&payment,
		&o.TotalPrice,
		&o.CustomerNotes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.OrderType = domain.OrderType(orderType)
	o.Status = domain.OrderStatus(status)
	o.PaymentStatus = domain.PaymentStatus(payment)
	return &o, nil
}
