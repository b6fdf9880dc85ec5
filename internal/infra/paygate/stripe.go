package paygate

import (
	"context"

	"ec-checkout/internal/pkg/config"
	"ec-checkout/internal/pkg/errs"
	"ec-checkout/internal/usecase"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway adapts Stripe Checkout to the usecase.PaymentGateway port.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.APIKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) RegisterTaxRate(ctx context.Context, params usecase.TaxRateParams) (usecase.TaxRateID, error) {
	p := &stripe.TaxRateParams{
		DisplayName:  stripe.String(params.DisplayName),
		Description:  stripe.String(params.Description),
		Country:      stripe.String(params.Country),
		Jurisdiction: stripe.String(params.Jurisdiction),
		Percentage:   stripe.Float64(params.Percentage),
		Inclusive:    stripe.Bool(params.Inclusive),
	}
	p.Context = ctx

	taxRate, err := g.api.TaxRates.New(p)
	if err != nil {
		return "", errs.Wrap(err, "failed to register tax rate")
	}
	return usecase.TaxRateID(taxRate.ID), nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params usecase.CheckoutSessionParams) (*usecase.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.LineItems))
	for _, li := range params.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(li.Currency),
				UnitAmount: stripe.Int64(li.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			},
			Quantity: stripe.Int64(li.Quantity),
			TaxRates: stripe.StringSlice([]string{string(li.TaxRate)}),
		})
	}

	p := &stripe.CheckoutSessionParams{
		CustomerEmail:      stripe.String(params.CustomerEmail),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
	}
	p.Context = ctx

	session, err := g.api.CheckoutSessions.New(p)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create checkout session")
	}

	return &usecase.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
