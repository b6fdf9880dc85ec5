package sessioncart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ec-checkout/internal/domain/cart"
	"ec-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cart:{user_id} -> {"items":{item_id:quantity},"total":...,"tax_included_total":...}
const keyCart = "cart:%s"

// Store keeps the session cart in Redis. The TTL sweeps carts of sessions
// that never reach checkout.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get returns nil without error when no cart exists for the user.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	val, err := s.client.Get(ctx, fmt.Sprintf(keyCart, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to get cart from session store")
	}

	var c cart.Cart
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, errs.Wrap(err, "failed to decode cart")
	}
	return &c, nil
}

func (s *Store) Set(ctx context.Context, userID uuid.UUID, c *cart.Cart) error {
	val, err := json.Marshal(c)
	if err != nil {
		return errs.Wrap(err, "failed to encode cart")
	}
	if err := s.client.Set(ctx, fmt.Sprintf(keyCart, userID), val, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to set cart in session store")
	}
	return nil
}

// Delete is a no-op when the cart is already gone.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, fmt.Sprintf(keyCart, userID)).Err(); err != nil {
		return errs.Wrap(err, "failed to delete cart from session store")
	}
	return nil
}
