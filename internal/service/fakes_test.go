package service

import (
	"context"
	"errors"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// In-memory fakes for the store interfaces. They copy on read so services
// only persist state through explicit writes, like the real repositories.

type fakeMenuStore struct {
	items map[int64]domain.MenuItem
	err   error
}

func (f *fakeMenuStore) GetByIDs(_ context.Context, ids []int64) ([]domain.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.MenuItem
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeCartStore struct {
	carts      map[int64]*domain.Cart
	byCustomer map[int64]int64
	nextID     int64
	saveErr    map[int64]error
	saves      int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		carts:      map[int64]*domain.Cart{},
		byCustomer: map[int64]int64{},
		saveErr:    map[int64]error{},
	}
}

func (f *fakeCartStore) Create(_ context.Context, customerID *int64) (*domain.Cart, error) {
	f.nextID++
	cart := &domain.Cart{ID: f.nextID, CustomerID: customerID}
	f.carts[cart.ID] = cart
	if customerID != nil {
		f.byCustomer[*customerID] = cart.ID
	}
	return copyCart(cart), nil
}

func (f *fakeCartStore) GetByID(_ context.Context, id int64) (*domain.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, domain.NotFound("cart not found")
	}
	return copyCart(cart), nil
}

func (f *fakeCartStore) GetByCustomer(_ context.Context, customerID int64) (*domain.Cart, error) {
	id, ok := f.byCustomer[customerID]
	if !ok {
		return nil, domain.NotFound("cart not found")
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakeCartStore) SaveItems(_ context.Context, cartID int64, items []domain.CartItem, total int64) error {
	if err := f.saveErr[cartID]; err != nil {
		return err
	}
	cart, ok := f.carts[cartID]
	if !ok {
		return domain.NotFound("cart not found")
	}
	cart.Items = append([]domain.CartItem(nil), items...)
	cart.TotalPrice = total
	f.saves++
	return nil
}

func copyCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = append([]domain.CartItem(nil), c.Items...)
	return &out
}

type fakeTableStore struct {
	tables []domain.Table
}

func (f *fakeTableStore) GetByID(_ context.Context, id int64) (*domain.Table, error) {
	for _, t := range f.tables {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, domain.NotFound("table not found")
}

func (f *fakeTableStore) ListBookable(_ context.Context, minCapacity int) ([]domain.Table, error) {
	var out []domain.Table
	for _, t := range f.tables {
		if t.Capacity >= minCapacity && t.Status != domain.TableMaintenance {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeReservationStore struct {
	reservations map[int64]*domain.Reservation
	nextID       int64
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: map[int64]*domain.Reservation{}}
}

func (f *fakeReservationStore) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	stored := *r
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.reservations[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, domain.NotFound("reservation not found")
	}
	out := *r
	return &out, nil
}

func (f *fakeReservationStore) ListActiveForDate(_ context.Context, date time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.Status == domain.ReservationCancelled {
			continue
		}
		if r.Date.Year() == date.Year() && r.Date.YearDay() == date.YearDay() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	r, ok := f.reservations[id]
	if !ok {
		return domain.NotFound("reservation not found")
	}
	r.Status = status
	return nil
}

type fakeOrderStore struct {
	orders    map[int64]*domain.Order
	nextID    int64
	createErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[int64]*domain.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *o
	stored.ID = f.nextID
	stored.Items = append([]domain.OrderItem(nil), o.Items...)
	stored.CreatedAt = time.Now()
	f.orders[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.NotFound("order not found")
	}
	out := *o
	out.Items = append([]domain.OrderItem(nil), o.Items...)
	return &out, nil
}

func (f *fakeOrderStore) ListByCustomer(_ context.Context, customerID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(_ context.Context, _ int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id int64, status *domain.OrderStatus, payment *domain.PaymentStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.NotFound("order not found")
	}
	if status != nil {
		o.Status = *status
	}
	if payment != nil {
		o.PaymentStatus = *payment
	}
	o.UpdatedAt = time.Now()
	return nil
}

type fakeUserStore struct {
	users map[int64]domain.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.NotFound("user not found")
	}
	return &u, nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeAuditSink struct {
	entries []domain.AuditEntry
	err     error
}

func (f *fakeAuditSink) Record(_ context.Context, entry domain.AuditEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeNotificationStore struct {
	notes  []domain.Notification
	nextID int64
}

func (f *fakeNotificationStore) Create(_ context.Context, n domain.Notification) (*domain.Notification, error) {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeNotificationStore) HasUnreadForReference(_ context.Context, userID int64, reference string) (bool, error) {
	for _, n := range f.notes {
		if n.UserID == userID && n.Reference == reference && n.ReadAt == nil {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	confirmations int
	managerCalls  int
	err           error
}

func (f *fakeNotifier) SendReservationConfirmation(context.Context, *domain.Reservation) error {
	f.confirmations++
	return f.err
}

func (f *fakeNotifier) NotifyManagers(context.Context, *domain.Reservation) error {
	f.managerCalls++
	return f.err
}

var errStoreDown = errors.New("store unavailable")
