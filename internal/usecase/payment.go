package usecase

import "context"

// TaxRateID identifies a tax rate pre-registered with the payment processor.
// It is produced once at startup and threaded in explicitly.
type TaxRateID string

type TaxRateParams struct {
	DisplayName  string
	Description  string
	Country      string
	Jurisdiction string
	Percentage   float64
	Inclusive    bool
}

// LineItem is the processor-facing record for one purchasable quantity of a
// product within a checkout session.
type LineItem struct {
	Currency   string
	UnitAmount int64
	Name       string
	Quantity   int64
	TaxRate    TaxRateID
}

type CheckoutSessionParams struct {
	CustomerEmail string
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	// RegisterTaxRate is called once at process startup.
	RegisterTaxRate(ctx context.Context, params TaxRateParams) (TaxRateID, error)
	// CreateCheckoutSession creates a one-shot card payment session and
	// returns its hosted URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
}

// LineItemBuilder builds processor line items with the store's single
// supported currency and the pre-registered tax rate.
type LineItemBuilder struct {
	currency string
	taxRate  TaxRateID
}

func NewLineItemBuilder(currency string, taxRate TaxRateID) *LineItemBuilder {
	return &LineItemBuilder{
		currency: currency,
		taxRate:  taxRate,
	}
}

func (b *LineItemBuilder) Build(unitAmount int64, name string, quantity int64) LineItem {
	return LineItem{
		Currency:   b.currency,
		UnitAmount: unitAmount,
		Name:       name,
		Quantity:   quantity,
		TaxRate:    b.taxRate,
	}
}
