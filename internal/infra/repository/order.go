package repository

import (
	"context"
	"encoding/json"
	"time"

	"ec-checkout/internal/domain/order"
	"ec-checkout/internal/domain/user"
	"ec-checkout/internal/infra"
	"ec-checkout/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Lines())
	if err != nil {
		return infra.WrapRepoErr("failed to serialize order lines", err)
	}
	shippingJSON, err := json.Marshal(o.Shipping())
	if err != nil {
		return infra.WrapRepoErr("failed to serialize shipping snapshot", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (id, user_id, items, shipping, amount, tax_included, is_confirmed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID(), o.UserID(), itemsJSON, shippingJSON, o.Amount(), o.TaxIncluded(), o.IsConfirmed(), o.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

// Confirm re-writes the flag unconditionally so the success callback is safe
// to replay; the row count tells the caller whether the pair matched.
func (r *OrderRepository) Confirm(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE orders
		SET is_confirmed = TRUE
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to confirm order", err)
	}
	return ct.RowsAffected(), nil
}

// FindUnconfirmedByUser locks the selected rows; the cancel sweep runs inside
// a transaction and must not race a concurrent confirmation.
func (r *OrderRepository) FindUnconfirmedByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, items, shipping, amount, tax_included, is_confirmed, created_at
		FROM orders
		WHERE user_id = $1 AND is_confirmed = FALSE
		ORDER BY created_at
		FOR UPDATE`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find unconfirmed orders", err)
	}
	defer rows.Close()

	var result []*order.Order
	for rows.Next() {
		var (
			id, uid                 uuid.UUID
			itemsJSON, shippingJSON []byte
			amount, taxIncluded     int64
			isConfirmed             bool
			createdAt               time.Time
		)
		if err := rows.Scan(&id, &uid, &itemsJSON, &shippingJSON, &amount, &taxIncluded, &isConfirmed, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}

		var lines []order.Line
		if err := json.Unmarshal(itemsJSON, &lines); err != nil {
			return nil, infra.WrapRepoErr("failed to deserialize order lines", err)
		}
		var shipping user.Profile
		if err := json.Unmarshal(shippingJSON, &shipping); err != nil {
			return nil, infra.WrapRepoErr("failed to deserialize shipping snapshot", err)
		}

		result = append(result, order.ReconstructOrder(id, uid, lines, shipping, amount, taxIncluded, isConfirmed, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read unconfirmed orders", err)
	}

	return result, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	return nil
}
