package usecase

import (
	"context"

	"ec-checkout/internal/domain/cart"
	"ec-checkout/internal/domain/item"
	"ec-checkout/internal/domain/order"
	"ec-checkout/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork runs a function inside one database transaction. Everything the
// function does through Tx either commits together or rolls back together.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Items() ItemRepository
	Orders() OrderRepository
}

type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error)
	// Reserve decrements stock and increments sold_count atomically,
	// conditional on stock >= quantity. Returns item.ErrInsufficientStock
	// when the condition fails.
	Reserve(ctx context.Context, id uuid.UUID, quantity int64) error
	// Release reverses Reserve for the same quantity.
	Release(ctx context.Context, id uuid.UUID, quantity int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	// Confirm sets is_confirmed = true for the (id, userID) pair and reports
	// how many rows matched. The flag is re-written even when already true.
	Confirm(ctx context.Context, id, userID uuid.UUID) (int64, error)
	FindUnconfirmedByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// CartStore is the session-backed cart. Get returns nil when no cart exists.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Set(ctx context.Context, userID uuid.UUID, c *cart.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
