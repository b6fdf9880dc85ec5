//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ec-checkout/internal/domain/cart"
	"ec-checkout/internal/domain/item"
	"ec-checkout/internal/domain/order"
	"ec-checkout/internal/domain/user"
	"ec-checkout/internal/infra"
	"ec-checkout/internal/pkg/clock"
	"ec-checkout/internal/pkg/config"
	"ec-checkout/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItemRepo struct {
	items map[uuid.UUID]*item.Item
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", errors.New("no rows"), infra.KindNotFound)
	}
	return it, nil
}

func (f *fakeItemRepo) Reserve(_ context.Context, id uuid.UUID, quantity int64) error {
	it, ok := f.items[id]
	if !ok {
		return infra.WrapRepoErr("item not found", errors.New("no rows"), infra.KindNotFound)
	}
	return it.Reserve(quantity)
}

func (f *fakeItemRepo) Release(_ context.Context, id uuid.UUID, quantity int64) error {
	it, ok := f.items[id]
	if !ok {
		return infra.WrapRepoErr("item not found", errors.New("no rows"), infra.KindNotFound)
	}
	return it.Release(quantity)
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*order.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.orders[o.ID()] = o
	return nil
}

func (f *fakeOrderRepo) Confirm(_ context.Context, id, userID uuid.UUID) (int64, error) {
	ord, ok := f.orders[id]
	if !ok || ord.UserID() != userID {
		return 0, nil
	}
	ord.Confirm()
	return 1, nil
}

func (f *fakeOrderRepo) FindUnconfirmedByUser(_ context.Context, userID uuid.UUID) ([]*order.Order, error) {
	var found []*order.Order
	for _, ord := range f.orders {
		if ord.UserID() == userID && !ord.IsConfirmed() {
			found = append(found, ord)
		}
	}
	return found, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	usr, ok := f.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound)
	}
	return usr, nil
}

type fakeCartStore struct {
	carts map[uuid.UUID]*cart.Cart
}

func (f *fakeCartStore) Get(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeCartStore) Set(_ context.Context, userID uuid.UUID, c *cart.Cart) error {
	f.carts[userID] = c
	return nil
}

func (f *fakeCartStore) Delete(_ context.Context, userID uuid.UUID) error {
	delete(f.carts, userID)
	return nil
}

type fakeGateway struct {
	sessions []usecase.CheckoutSessionParams
	failWith error
}

func (f *fakeGateway) RegisterTaxRate(_ context.Context, _ usecase.TaxRateParams) (usecase.TaxRateID, error) {
	return "txr_test", nil
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, params usecase.CheckoutSessionParams) (*usecase.CheckoutSession, error) {
	f.sessions = append(f.sessions, params)
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &usecase.CheckoutSession{ID: "cs_test", URL: "https://pay.example.com/c/cs_test"}, nil
}

type fakeTx struct {
	items  *fakeItemRepo
	orders *fakeOrderRepo
}

func (t *fakeTx) Items() usecase.ItemRepository   { return t.items }
func (t *fakeTx) Orders() usecase.OrderRepository { return t.orders }

// fakeUnitOfWork snapshots repository state before the callback and restores
// it on error, mimicking a transaction rollback.
type fakeUnitOfWork struct {
	tx *fakeTx
}

func (f *fakeUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx usecase.Tx) error) error {
	itemSnap := make(map[uuid.UUID]*item.Item, len(f.tx.items.items))
	for id, it := range f.tx.items.items {
		cp := *it
		itemSnap[id] = &cp
	}
	orderSnap := make(map[uuid.UUID]*order.Order, len(f.tx.orders.orders))
	for id, ord := range f.tx.orders.orders {
		cp := *ord
		orderSnap[id] = &cp
	}

	if err := fn(ctx, f.tx); err != nil {
		f.tx.items.items = itemSnap
		f.tx.orders.orders = orderSnap
		return err
	}
	return nil
}

type fixture struct {
	items   *fakeItemRepo
	orders  *fakeOrderRepo
	users   *fakeUserRepo
	carts   *fakeCartStore
	gateway *fakeGateway
	clock   *clock.MockClock
	uc      usecase.CheckoutUseCase
}

func newFixture() *fixture {
	f := &fixture{
		items:   &fakeItemRepo{items: make(map[uuid.UUID]*item.Item)},
		orders:  &fakeOrderRepo{orders: make(map[uuid.UUID]*order.Order)},
		users:   &fakeUserRepo{users: make(map[uuid.UUID]*user.User)},
		carts:   &fakeCartStore{carts: make(map[uuid.UUID]*cart.Cart)},
		gateway: &fakeGateway{},
		clock:   clock.NewMockClock(time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)),
	}

	cfg := config.CheckoutConfig{
		BaseURL:        "https://store.example.com",
		Currency:       "jpy",
		TaxRatePercent: 10,
		TaxCountry:     "JP",
	}
	uow := &fakeUnitOfWork{tx: &fakeTx{items: f.items, orders: f.orders}}
	builder := usecase.NewLineItemBuilder(cfg.Currency, "txr_test")
	f.uc = usecase.NewCheckoutUseCase(uow, f.users, f.orders, f.carts, f.gateway, builder, cfg, f.clock)
	return f
}

func (f *fixture) seedUser(t *testing.T, shippable bool) uuid.UUID {
	t.Helper()
	email, err := user.NewEmail("taro@example.com")
	require.NoError(t, err)

	profile := user.Profile{}
	if shippable {
		profile = user.Profile{
			Name:       "山田太郎",
			Zipcode:    "150-0002",
			Prefecture: "東京都",
			City:       "渋谷区",
			Address1:   "渋谷2-24-12",
		}
	}
	usr := user.ReconstructUser(uuid.New(), email, profile, f.clock.Now())
	f.users.users[usr.ID()] = usr
	return usr.ID()
}

func (f *fixture) seedItem(name string, price, stock, soldCount int64) uuid.UUID {
	id := uuid.New()
	f.items.items[id] = item.ReconstructItem(id, name, "/media/"+name+".jpg", price, stock, soldCount, f.clock.Now())
	return id
}

func (f *fixture) setCart(userID uuid.UUID, items map[uuid.UUID]int64, total, taxIncluded int64) {
	f.carts.carts[userID] = &cart.Cart{Items: items, Total: total, TaxIncludedTotal: taxIncluded}
}

func (f *fixture) singleOrder(t *testing.T) *order.Order {
	t.Helper()
	require.Len(t, f.orders.orders, 1)
	for _, ord := range f.orders.orders {
		return ord
	}
	return nil
}

func TestInitiateCheckout_ReservesStockAndCreatesOrder(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 10, 5)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)

	redirect, err := f.uc.InitiateCheckout(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/c/cs_test", redirect.URL)

	it := f.items.items[itemID]
	assert.Equal(t, int64(8), it.Stock())
	assert.Equal(t, int64(7), it.SoldCount())

	ord := f.singleOrder(t)
	assert.Equal(t, redirect.OrderID, ord.ID())
	assert.Equal(t, userID, ord.UserID())
	assert.False(t, ord.IsConfirmed())
	assert.Equal(t, int64(2000), ord.Amount())
	assert.Equal(t, int64(2200), ord.TaxIncluded())
	require.Len(t, ord.Lines(), 1)
	assert.Equal(t, itemID, ord.Lines()[0].PK)
	assert.Equal(t, int64(2), ord.Lines()[0].Quantity)

	require.Len(t, f.gateway.sessions, 1)
	session := f.gateway.sessions[0]
	assert.Equal(t, "taro@example.com", session.CustomerEmail)
	assert.Equal(t, fmt.Sprintf("https://store.example.com/pay/success/?order_id=%s", ord.ID()), session.SuccessURL)
	assert.Equal(t, "https://store.example.com/pay/cancel/", session.CancelURL)
	require.Len(t, session.LineItems, 1)
	assert.Equal(t, usecase.LineItem{
		Currency:   "jpy",
		UnitAmount: 1000,
		Name:       "coffee-beans",
		Quantity:   2,
		TaxRate:    "txr_test",
	}, session.LineItems[0])
}

func TestInitiateCheckout_UserNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.InitiateCheckout(context.Background(), uuid.New())
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestInitiateCheckout_ProfileIncomplete(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, false)
	itemID := f.seedItem("coffee-beans", 1000, 10, 0)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 1}, 1000, 1100)

	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrProfileIncomplete)
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, int64(10), f.items.items[itemID].Stock())
}

func TestInitiateCheckout_EmptyCart(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)

	// カート未作成
	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)

	// 空のカート
	f.setCart(userID, map[uuid.UUID]int64{}, 0, 0)
	_, err = f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)
	assert.Empty(t, f.orders.orders)
}

func TestInitiateCheckout_ItemRemovedFromCatalog(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	f.setCart(userID, map[uuid.UUID]int64{uuid.New(): 1}, 1000, 1100)

	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrItemNotFound)
	assert.Empty(t, f.orders.orders)
}

func TestInitiateCheckout_InsufficientStock(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 1, 3)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)

	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)
	assert.Equal(t, int64(1), f.items.items[itemID].Stock())
	assert.Equal(t, int64(3), f.items.items[itemID].SoldCount())
	assert.Empty(t, f.orders.orders)
}

func TestInitiateCheckout_PartialReservationRollsBack(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)

	// 2品のうち片方だけ在庫不足。一部だけ確保された状態が残らないこと。
	okID := f.seedItem("coffee-beans", 1000, 10, 0)
	shortID := f.seedItem("drip-kettle", 5000, 1, 0)
	f.setCart(userID, map[uuid.UUID]int64{okID: 2, shortID: 3}, 17000, 18700)

	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.items.items[okID].Stock())
	assert.Equal(t, int64(0), f.items.items[okID].SoldCount())
	assert.Equal(t, int64(1), f.items.items[shortID].Stock())
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.gateway.sessions)
}

func TestInitiateCheckout_PaymentSessionFailureCompensates(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 10, 5)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)
	f.gateway.failWith = errors.New("stripe: api_connection_error")

	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	assert.ErrorIs(t, err, usecase.ErrPaymentSessionFailed)

	// 決済セッション作成に失敗したら予約と注文は補償で戻る
	it := f.items.items[itemID]
	assert.Equal(t, int64(10), it.Stock())
	assert.Equal(t, int64(5), it.SoldCount())
	assert.Empty(t, f.orders.orders)
}

func TestConfirmOrder_ConfirmsAndDiscardsCart(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 10, 5)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)

	redirect, err := f.uc.InitiateCheckout(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, f.uc.ConfirmOrder(context.Background(), userID, redirect.OrderID))

	ord := f.singleOrder(t)
	assert.True(t, ord.IsConfirmed())
	assert.Nil(t, f.carts.carts[userID])

	// 成功ページの再読み込みで何度呼ばれても同じ結果
	require.NoError(t, f.uc.ConfirmOrder(context.Background(), userID, redirect.OrderID))
	assert.True(t, f.singleOrder(t).IsConfirmed())
}

func TestConfirmOrder_WrongUserIsNoOp(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	otherID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 10, 5)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)

	redirect, err := f.uc.InitiateCheckout(context.Background(), userID)
	require.NoError(t, err)

	// 他人の order_id では確定も、カート破棄も起きない
	require.NoError(t, f.uc.ConfirmOrder(context.Background(), otherID, redirect.OrderID))
	assert.False(t, f.singleOrder(t).IsConfirmed())
	assert.NotNil(t, f.carts.carts[userID])
}

func TestConfirmOrder_UnknownOrderIsNoOp(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)

	require.NoError(t, f.uc.ConfirmOrder(context.Background(), userID, uuid.New()))
}

func TestReleasePendingOrders_RevertsStockAndDeletesOrders(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 10, 5)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)

	_, err := f.uc.InitiateCheckout(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(8), f.items.items[itemID].Stock())

	require.NoError(t, f.uc.ReleasePendingOrders(context.Background(), userID))

	it := f.items.items[itemID]
	assert.Equal(t, int64(10), it.Stock())
	assert.Equal(t, int64(5), it.SoldCount())
	assert.Empty(t, f.orders.orders)
}

func TestReleasePendingOrders_LeavesConfirmedOrders(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)
	itemID := f.seedItem("coffee-beans", 1000, 10, 5)
	f.setCart(userID, map[uuid.UUID]int64{itemID: 2}, 2000, 2200)

	redirect, err := f.uc.InitiateCheckout(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, f.uc.ConfirmOrder(context.Background(), userID, redirect.OrderID))

	require.NoError(t, f.uc.ReleasePendingOrders(context.Background(), userID))

	// 確定済み注文と販売済み在庫はキャンセルの対象外
	assert.True(t, f.singleOrder(t).IsConfirmed())
	assert.Equal(t, int64(8), f.items.items[itemID].Stock())
	assert.Equal(t, int64(7), f.items.items[itemID].SoldCount())
}

func TestReleasePendingOrders_NoPendingOrdersIsNoOp(t *testing.T) {
	f := newFixture()
	userID := f.seedUser(t, true)

	require.NoError(t, f.uc.ReleasePendingOrders(context.Background(), userID))
}
