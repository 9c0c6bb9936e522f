package domain

import "time"

// Enumerations
const (
	RoleCustomer UserRole = "customer"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"

	CategoryAppetizer MenuCategory = "Appetizer"
	CategoryMain      MenuCategory = "Main Course"
	CategoryDessert   MenuCategory = "Dessert"
	CategoryBeverage  MenuCategory = "Beverage"
	CategorySpecial   MenuCategory = "Special"

	OrderTypeDineIn   OrderType = "Dine-In"
	OrderTypeTakeaway OrderType = "Takeaway"
	OrderTypeDelivery OrderType = "Delivery"

	OrderPending    OrderStatus = "Pending"
	OrderAccepted   OrderStatus = "Accepted"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"

	PaymentUnpaid   PaymentStatus = "Unpaid"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"

	TableAvailable   TableStatus = "Available"
	TableOccupied    TableStatus = "Occupied"
	TableMaintenance TableStatus = "Maintenance"

	LocationIndoor  TableLocation = "Indoor"
	LocationOutdoor TableLocation = "Outdoor"
	LocationBalcony TableLocation = "Balcony"
	LocationPrivate TableLocation = "Private"

	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
	ReservationNoShow    ReservationStatus = "No-Show"

	OccasionBirthday    Occasion = "Birthday"
	OccasionAnniversary Occasion = "Anniversary"
	OccasionBusiness    Occasion = "Business"
	OccasionCasual      Occasion = "Casual"
	OccasionOther       Occasion = "Other"

	SeverityInfo    LogSeverity = "info"
	SeverityWarning LogSeverity = "warning"
	SeverityError   LogSeverity = "error"

	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type UserRole string
type MenuCategory string
type OrderType string
type OrderStatus string
type PaymentStatus string
type TableStatus string
type TableLocation string
type TableFeature string
type ReservationStatus string
type Occasion string
type LogSeverity string
type NotificationType string

// Table feature tags.
const (
	FeatureWindowView TableFeature = "Window View"
	FeatureWheelchair TableFeature = "Wheelchair Accessible"
	FeatureRestroom   TableFeature = "Near Restroom"
	FeatureQuietArea  TableFeature = "Quiet Area"
)

// Principal is the already-authenticated caller identity handed to the
// engines. Credential checks happen at the boundary, never here.
type Principal struct {
	ID   int64
	Role UserRole
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMain, CategoryDessert, CategoryBeverage, CategorySpecial:
		return true
	}
	return false
}

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableMaintenance:
		return true
	}
	return false
}

func (l TableLocation) Valid() bool {
	switch l {
	case LocationIndoor, LocationOutdoor, LocationBalcony, LocationPrivate:
		return true
	}
	return false
}

func (o Occasion) Valid() bool {
	switch o {
	case OccasionBirthday, OccasionAnniversary, OccasionBusiness, OccasionCasual, OccasionOther:
		return true
	}
	return false
}

func (f TableFeature) Valid() bool {
	switch f {
	case FeatureWindowView, FeatureWheelchair, FeatureRestroom, FeatureQuietArea:
		return true
	}
	return false
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted, ReservationNoShow:
		return true
	}
	return false
}

// Terminal reports whether the status ends the reservation lifecycle.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCancelled || s == ReservationCompleted
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Role         UserRole
	CartID       *int64
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MenuItem prices are cents. Orders snapshot the price at creation; the
// catalog value here is point-in-time only.
type MenuItem struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Category    MenuCategory
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Cart struct {
	ID         int64
	CustomerID *int64
	Items      []CartItem
	TotalPrice int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem quantity is always >= 1; a quantity update to zero or below
// removes the line instead.
type CartItem struct {
	MenuItemID int64
	Quantity   int
}

// Item returns a pointer to the cart line for the menu item, or nil.
func (c *Cart) Item(menuItemID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			return &c.Items[i]
		}
	}
	return nil
}

type Order struct {
	ID            int64
	CustomerID    int64
	CustomerName  string
	Items         []OrderItem
	OrderType     OrderType
	Status        OrderStatus
	PaymentStatus PaymentStatus
	TotalPrice    int64
	CustomerNotes string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem carries the unit price snapshotted at order creation. Later
// catalog price changes never touch it.
type OrderItem struct {
	ID         int64
	MenuItemID *int64
	Name       string
	Quantity   int
	UnitPrice  int64
}

type Table struct {
	ID          int64
	TableNumber int
	Capacity    int
	Location    TableLocation
	Status      TableStatus
	Features    []TableFeature
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Reservation struct {
	ID              int64
	UserID          int64
	TableID         int64
	PartySize       int
	Date            time.Time
	StartTime       string
	EndTime         string
	DurationHours   float64
	Status          ReservationStatus
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests string
	Occasion        Occasion
	CreatedBy       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AuditEntry is an append-only record of a mutating operation. The engines
// write these and never read them back.
type AuditEntry struct {
	ID            int64
	Action        string
	Description   string
	Severity      LogSeverity
	Type          string
	UserID        int64
	AffectedID    *int64
	AffectedModel string
	PerformedAt   time.Time
}

type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	Reference string
	CreatedAt time.Time
	ReadAt    *time.Time
}

type Feedback struct {
	ID        int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
