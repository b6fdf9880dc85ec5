package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"ec-checkout/internal/infra/paygate"
	"ec-checkout/internal/pkg/config"
	"ec-checkout/internal/usecase"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
		NewTaxRateID,
		NewLineItemBuilder,
	),
)

func NewPaymentGateway(cfg config.Config) usecase.PaymentGateway {
	return paygate.NewStripeGateway(cfg.Stripe)
}

// NewTaxRateID registers the store's single tax rate with the payment
// processor once at startup. The returned identifier is threaded explicitly
// into the line item builder instead of living in package state.
func NewTaxRateID(gateway usecase.PaymentGateway, cfg config.Config) (usecase.TaxRateID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taxRateID, err := gateway.RegisterTaxRate(ctx, usecase.TaxRateParams{
		DisplayName:  "消費税",
		Description:  "消費税",
		Country:      cfg.Checkout.TaxCountry,
		Jurisdiction: cfg.Checkout.TaxCountry,
		Percentage:   cfg.Checkout.TaxRatePercent,
		Inclusive:    false, // 外税
	})
	if err != nil {
		return "", err
	}

	slog.Info("tax rate registered", "tax_rate_id", string(taxRateID))
	return taxRateID, nil
}

func NewLineItemBuilder(cfg config.Config, taxRateID usecase.TaxRateID) *usecase.LineItemBuilder {
	return usecase.NewLineItemBuilder(cfg.Checkout.Currency, taxRateID)
}
