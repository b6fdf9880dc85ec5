package components

import (
	"ec-checkout/internal/pkg/clock"
	"ec-checkout/internal/pkg/config"
	"ec-checkout/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewTokenValidator,
		NewCheckoutUseCase,
	),
)

func NewCheckoutUseCase(
	uow usecase.UnitOfWork,
	userRepo usecase.UserRepository,
	orderRepo usecase.OrderRepository,
	cartStore usecase.CartStore,
	gateway usecase.PaymentGateway,
	lineItems *usecase.LineItemBuilder,
	cfg config.Config,
	clock clock.Clock,
) usecase.CheckoutUseCase {
	return usecase.NewCheckoutUseCase(uow, userRepo, orderRepo, cartStore, gateway, lineItems, cfg.Checkout, clock)
}
