package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"ec-checkout/internal/domain/cart"
	"ec-checkout/internal/domain/item"
	"ec-checkout/internal/domain/order"
	"ec-checkout/internal/domain/user"
	"ec-checkout/internal/infra"
	"ec-checkout/internal/pkg/clock"
	"ec-checkout/internal/pkg/config"
	"ec-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileIncomplete    = errors.New("shipping profile incomplete")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrItemNotFound         = errors.New("item not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrPaymentSessionFailed = errors.New("payment session creation failed")

	// Error markers for categorization
	ErrDomainValidationFailed  = errors.New("domain validation failed")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// CheckoutRedirect tells the handler where to send the browser next.
type CheckoutRedirect struct {
	URL     string
	OrderID uuid.UUID
}

type CheckoutUseCase interface {
	InitiateCheckout(ctx context.Context, userID uuid.UUID) (*CheckoutRedirect, error)
	ConfirmOrder(ctx context.Context, userID, orderID uuid.UUID) error
	ReleasePendingOrders(ctx context.Context, userID uuid.UUID) error
}

type checkoutUseCaseImpl struct {
	uow       UnitOfWork
	userRepo  UserRepository
	orderRepo OrderRepository
	cartStore CartStore
	gateway   PaymentGateway
	lineItems *LineItemBuilder
	baseURL   string
	clock     clock.Clock
}

func NewCheckoutUseCase(
	uow UnitOfWork,
	userRepo UserRepository,
	orderRepo OrderRepository,
	cartStore CartStore,
	gateway PaymentGateway,
	lineItems *LineItemBuilder,
	cfg config.CheckoutConfig,
	clock clock.Clock,
) CheckoutUseCase {
	return &checkoutUseCaseImpl{
		uow:       uow,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		cartStore: cartStore,
		gateway:   gateway,
		lineItems: lineItems,
		baseURL:   cfg.BaseURL,
		clock:     clock,
	}
}

// InitiateCheckout turns the session cart into an unconfirmed order, reserving
// stock for every line, and opens a hosted payment session for it. Stock
// reservation and order creation commit in one transaction; if the payment
// session cannot be created afterwards, the committed state is rolled back by
// a compensating release.
func (u *checkoutUseCaseImpl) InitiateCheckout(ctx context.Context, userID uuid.UUID) (*CheckoutRedirect, error) {
	usr, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}
	if !usr.Profile().IsShippable() {
		return nil, ErrProfileIncomplete
	}

	crt, err := u.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load cart")
	}
	if crt.IsEmpty() {
		return nil, ErrCartEmpty
	}

	ord, lineItems, err := u.reserveAndCreateOrder(ctx, usr, crt)
	if err != nil {
		return nil, err
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		CustomerEmail: usr.Email().Value(),
		LineItems:     lineItems,
		SuccessURL:    fmt.Sprintf("%s/pay/success/?order_id=%s", u.baseURL, ord.ID()),
		CancelURL:     u.baseURL + "/pay/cancel/",
	})
	if err != nil {
		u.rollbackOrder(ctx, ord)
		return nil, errs.Mark(err, ErrPaymentSessionFailed)
	}

	return &CheckoutRedirect{URL: session.URL, OrderID: ord.ID()}, nil
}

// reserveAndCreateOrder runs the cart translation in one transaction:
// validate every line first, then reserve all stock and persist the order.
// Any failure rolls the whole thing back, so no partially reserved state can
// survive a mid-loop error.
func (u *checkoutUseCaseImpl) reserveAndCreateOrder(ctx context.Context, usr *user.User, crt *cart.Cart) (*order.Order, []LineItem, error) {
	// 同時チェックアウトでもロック順が一定になるよう ID でソートする
	ids := make([]uuid.UUID, 0, len(crt.Items))
	for id := range crt.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var ord *order.Order
	var lineItems []LineItem

	err := u.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		found := make([]*item.Item, 0, len(ids))
		for _, id := range ids {
			it, err := tx.Items().FindByID(ctx, id)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrItemNotFound
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if it.Stock() < crt.Items[id] {
				return ErrInsufficientStock
			}
			found = append(found, it)
		}

		lines := make([]order.Line, 0, len(found))
		builtItems := make([]LineItem, 0, len(found))
		for _, it := range found {
			quantity := crt.Items[it.ID()]
			if err := tx.Items().Reserve(ctx, it.ID(), quantity); err != nil {
				if errors.Is(err, item.ErrInsufficientStock) {
					return ErrInsufficientStock
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			builtItems = append(builtItems, u.lineItems.Build(it.Price(), it.Name(), quantity))
			lines = append(lines, order.Line{
				PK:       it.ID(),
				Name:     it.Name(),
				Image:    it.Image(),
				Price:    it.Price(),
				Quantity: quantity,
			})
		}

		newOrd, err := order.NewOrder(usr.ID(), lines, usr.Profile(), crt.Total, crt.TaxIncludedTotal, u.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDomainValidationFailed)
		}
		if err := tx.Orders().Create(ctx, newOrd); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		ord = newOrd
		lineItems = builtItems
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return ord, lineItems, nil
}

// rollbackOrder compensates a committed reservation after the payment session
// could not be created.
func (u *checkoutUseCaseImpl) rollbackOrder(ctx context.Context, ord *order.Order) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		for _, line := range ord.Lines() {
			if err := tx.Items().Release(ctx, line.PK, line.Quantity); err != nil {
				return err
			}
		}
		return tx.Orders().Delete(ctx, ord.ID())
	})
	if err != nil {
		slog.Error("failed to roll back order after payment session failure",
			"order_id", ord.ID(), "error", err)
	}
}

// ConfirmOrder flips the (orderID, userID) order to confirmed and discards the
// session cart. When no such order exists, or it belongs to another user, this
// is a no-op: the success page may be reloaded or replayed any number of times.
func (u *checkoutUseCaseImpl) ConfirmOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	affected, err := u.orderRepo.Confirm(ctx, orderID, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if affected != 1 {
		return nil
	}

	if err := u.cartStore.Delete(ctx, userID); err != nil {
		return errs.Wrap(err, "failed to discard cart")
	}
	return nil
}

// ReleasePendingOrders sweeps every unconfirmed order of the user: each
// reserved line goes back to stock and the orders are deleted, all in one
// transaction. Confirmed orders are never touched.
func (u *checkoutUseCaseImpl) ReleasePendingOrders(ctx context.Context, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		orders, err := tx.Orders().FindUnconfirmedByUser(ctx, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, ord := range orders {
			for _, line := range ord.Lines() {
				if err := tx.Items().Release(ctx, line.PK, line.Quantity); err != nil {
					return errs.Mark(err, ErrDatabaseOperationFailed)
				}
			}
			if err := tx.Orders().Delete(ctx, ord.ID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
}
