package item

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrExcessiveRelease  = errors.New("release exceeds sold count")
)

// Item is a catalog entry. Stock and sold count move in lockstep:
// Reserve と Release は必ず対になるため stock + soldCount は不変。
type Item struct {
	id        uuid.UUID
	name      string
	image     string
	price     int64
	stock     int64
	soldCount int64
	updatedAt time.Time
}

func ReconstructItem(id uuid.UUID, name, image string, price, stock, soldCount int64, updatedAt time.Time) *Item {
	return &Item{
		id:        id,
		name:      name,
		image:     image,
		price:     price,
		stock:     stock,
		soldCount: soldCount,
		updatedAt: updatedAt,
	}
}

// Reserve moves quantity units from stock to sold count. It fails when the
// stock on hand cannot cover the request, leaving the item unchanged.
func (i *Item) Reserve(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.stock < quantity {
		return ErrInsufficientStock
	}
	i.stock -= quantity
	i.soldCount += quantity
	return nil
}

// Release reverses an earlier Reserve of the same quantity.
func (i *Item) Release(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.soldCount < quantity {
		return ErrExcessiveRelease
	}
	i.stock += quantity
	i.soldCount -= quantity
	return nil
}

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Image() string        { return i.image }
func (i *Item) Price() int64         { return i.price }
func (i *Item) Stock() int64         { return i.stock }
func (i *Item) SoldCount() int64     { return i.soldCount }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
