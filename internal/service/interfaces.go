package service

import (
	"context"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// Store interfaces are declared on the consumer side so the engines can be
// exercised without a database. The pgx repositories satisfy them.

type MenuStore interface {
	// GetByIDs is a single batched read; ids absent from the catalog are
	// simply missing from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error)
}

type CartStore interface {
	Create(ctx context.Context, customerID *int64) (*domain.Cart, error)
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)
	GetByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error)
	// SaveItems replaces the item list and derived total in one write.
	SaveItems(ctx context.Context, cartID int64, items []domain.CartItem, total int64) error
}

type TableStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	// ListBookable returns tables with at least the given capacity that are
	// not under maintenance.
	ListBookable(ctx context.Context, minCapacity int) ([]domain.Table, error)
}

type ReservationStore interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	// ListActiveForDate returns all non-cancelled reservations whose date
	// falls in [date 00:00, date+1 00:00).
	ListActiveForDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	ListAll(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status *domain.OrderStatus, payment *domain.PaymentStatus) error
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

// AuditSink records mutating operations. Writes are fire-and-forget: a
// failed write is logged by the caller and never fails the operation.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// Notifier is the best-effort notification dispatch collaborator.
type Notifier interface {
	SendReservationConfirmation(ctx context.Context, r *domain.Reservation) error
	NotifyManagers(ctx context.Context, r *domain.Reservation) error
}

type NotificationStore interface {
	Create(ctx context.Context, n domain.Notification) (*domain.Notification, error)
	// HasUnreadForReference prevents double-notifying a user about the same
	// subject while the first notification is still unread.
	HasUnreadForReference(ctx context.Context, userID int64, reference string) (bool, error)
}
