package order

import (
	"errors"
	"time"

	"ec-checkout/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNoLines        = errors.New("order has no lines")
	ErrNegativeAmount = errors.New("order amount cannot be negative")
)

// Line is a denormalized snapshot of one purchased item. The JSON keys are
// part of the persisted order format and must stay stable.
type Line struct {
	PK       uuid.UUID `json:"pk"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Price    int64     `json:"price"`
	Quantity int64     `json:"quantity"`
}

// Order is a purchase record. It is created unconfirmed at checkout and
// reaches exactly one terminal state: confirmed (kept) or released (deleted).
type Order struct {
	id          uuid.UUID
	userID      uuid.UUID
	lines       []Line
	shipping    user.Profile
	amount      int64
	taxIncluded int64
	isConfirmed bool
	createdAt   time.Time
}

func NewOrder(userID uuid.UUID, lines []Line, shipping user.Profile, amount, taxIncluded int64, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if amount < 0 || taxIncluded < 0 {
		return nil, ErrNegativeAmount
	}
	return &Order{
		id:          uuid.New(),
		userID:      userID,
		lines:       lines,
		shipping:    shipping,
		amount:      amount,
		taxIncluded: taxIncluded,
		isConfirmed: false,
		createdAt:   now,
	}, nil
}

func ReconstructOrder(id, userID uuid.UUID, lines []Line, shipping user.Profile, amount, taxIncluded int64, isConfirmed bool, createdAt time.Time) *Order {
	return &Order{
		id:          id,
		userID:      userID,
		lines:       lines,
		shipping:    shipping,
		amount:      amount,
		taxIncluded: taxIncluded,
		isConfirmed: isConfirmed,
		createdAt:   createdAt,
	}
}

// Confirm marks the order as paid. Confirming an already confirmed order is a
// no-op so the success callback stays idempotent.
func (o *Order) Confirm() {
	o.isConfirmed = true
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) UserID() uuid.UUID      { return o.userID }
func (o *Order) Lines() []Line          { return o.lines }
func (o *Order) Shipping() user.Profile { return o.shipping }
func (o *Order) Amount() int64          { return o.amount }
func (o *Order) TaxIncluded() int64     { return o.taxIncluded }
func (o *Order) IsConfirmed() bool      { return o.isConfirmed }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
