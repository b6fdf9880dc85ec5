package repository

import (
	"context"
	"errors"
	"time"

	"ec-checkout/internal/domain/item"
	"ec-checkout/internal/infra"
	"ec-checkout/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{db: dbtx}
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, image, price, stock, sold_count, updated_at
		FROM items
		WHERE id = $1`, id)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return it, nil
}

// Reserve is the atomic conditional decrement: it only applies when the
// remaining stock covers the quantity, so concurrent checkouts can never push
// stock below zero.
func (r *ItemRepository) Reserve(ctx context.Context, id uuid.UUID, quantity int64) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE items
		SET stock = stock - $2, sold_count = sold_count + $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, id, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve item stock", err)
	}
	if ct.RowsAffected() == 0 {
		return item.ErrInsufficientStock
	}
	return nil
}

// Release reverses a reservation. The sold_count guard keeps a replayed or
// malformed release from inflating stock.
func (r *ItemRepository) Release(ctx context.Context, id uuid.UUID, quantity int64) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE items
		SET stock = stock + $2, sold_count = sold_count - $2, updated_at = now()
		WHERE id = $1 AND sold_count >= $2`, id, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to release item stock", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("release rejected for item "+id.String(), nil, infra.KindConflict)
	}
	return nil
}

func scanItem(row pgx.Row) (*item.Item, error) {
	var (
		id               uuid.UUID
		name, image      string
		price            int64
		stock, soldCount int64
		updatedAt        time.Time
	)
	if err := row.Scan(&id, &name, &image, &price, &stock, &soldCount, &updatedAt); err != nil {
		return nil, err
	}
	return item.ReconstructItem(id, name, image, price, stock, soldCount, updatedAt), nil
}
