package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is the read model of an order owned by the remote order service.
// The engine only ever reads it; CreatedAt drives the cadence gate.
type Order struct {
	ID         string
	Status     OrderStatus
	TotalKg    int
	TotalPrice float64
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderItem struct {
	ID           string
	ProductID    string
	ProductTitle string
	Kg           int
	IsBox        bool
	UnitPrice    float64
	Subtotal     float64
}

// CreateOrderItem is the submission payload for one line. Price and display
// fields are stripped — the order service is the source of truth for price.
type CreateOrderItem struct {
	ProductID string `json:"productId"`
	Kg        int    `json:"kg"`
	IsBox     bool   `json:"isBox"`
}

// Settings are the order-wide ceilings managed by the back office.
type Settings struct {
	MaxTotalKg int `json:"maxTotalKg"`
	MaxItems   int `json:"maxItems"`
}

// User is the slice of the authenticated account the engine cares about.
type User struct {
	ID        string
	SuperUser bool
}

// Mode maps the account's privilege onto the limit policy mode.
func (u User) Mode() Mode {
	if u.SuperUser {
		return ModeUnrestricted
	}
	return ModeStandard
}
