package stripe

//go:generate go run go.uber.org/mock/mockgen@latest -source=client.go -destination=mocks_test.go -package=stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-bridge/internal/observability"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var (
	ErrNotConfigured  = errors.New("stripe key not configured")
	ErrInvalidRequest = errors.New("stripe rejected the request")
)

// PaymentLinkRequest describes a one-off debt payment. Amount is in the
// smallest currency unit.
type PaymentLinkRequest struct {
	Amount   int64
	Currency string
	DebtorID string
	CaseID   string
	// Live selects the live key; otherwise the test key is used
	Live bool
}

type PaymentLink struct {
	ID  string
	URL string
}

type productCreator interface {
	New(params *stripego.ProductParams) (*stripego.Product, error)
}

type priceCreator interface {
	New(params *stripego.PriceParams) (*stripego.Price, error)
}

type paymentLinkCreator interface {
	New(params *stripego.PaymentLinkParams) (*stripego.PaymentLink, error)
}

// account is one Stripe key's view of the API
type account struct {
	products productCreator
	prices   priceCreator
	links    paymentLinkCreator
}

func newAccount(key string) *account {
	if key == "" {
		return nil
	}
	api := client.New(key, nil)
	return &account{products: api.Products, prices: api.Prices, links: api.PaymentLinks}
}

// Client creates payment links against the live or test Stripe account.
type Client struct {
	live        *account
	test        *account
	redirectURL string
	logger      *observability.Logger
}

func NewClient(liveKey, testKey, redirectURL string, logger *observability.Logger) *Client {
	return newClient(newAccount(liveKey), newAccount(testKey), redirectURL, logger)
}

func newClient(live, test *account, redirectURL string, logger *observability.Logger) *Client {
	return &Client{live: live, test: test, redirectURL: redirectURL, logger: logger}
}

// CreatePaymentLink creates a product, a price for the amount and a payment
// link for that price, tagged with the debtor and case ids.
func (c *Client) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (PaymentLink, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "case_id", Value: req.CaseID},
		observability.Field{Key: "stripe_live", Value: req.Live},
	)

	acct := c.test
	if req.Live {
		acct = c.live
	}
	if acct == nil {
		return PaymentLink{}, ErrNotConfigured
	}

	currency := strings.ToLower(req.Currency)

	productParams := &stripego.ProductParams{
		Name: stripego.String("Debt payment"),
	}
	productParams.Context = ctx
	prod, err := acct.products.New(productParams)
	if err != nil {
		c.logger.Error(ctx, "failed to create stripe product", err)
		return PaymentLink{}, wrapError("create product", err)
	}

	priceParams := &stripego.PriceParams{
		Currency:   stripego.String(currency),
		Product:    stripego.String(prod.ID),
		UnitAmount: stripego.Int64(req.Amount),
	}
	priceParams.Context = ctx
	p, err := acct.prices.New(priceParams)
	if err != nil {
		c.logger.Error(ctx, "failed to create stripe price", err)
		return PaymentLink{}, wrapError("create price", err)
	}

	linkParams := &stripego.PaymentLinkParams{
		LineItems: []*stripego.PaymentLinkLineItemParams{
			{
				Price:    stripego.String(p.ID),
				Quantity: stripego.Int64(1),
			},
		},
		PaymentMethodTypes: stripego.StringSlice(paymentMethods(currency)),
	}
	if c.redirectURL != "" {
		linkParams.AfterCompletion = &stripego.PaymentLinkAfterCompletionParams{
			Type: stripego.String("redirect"),
			Redirect: &stripego.PaymentLinkAfterCompletionRedirectParams{
				URL: stripego.String(c.redirectURL),
			},
		}
	}
	linkParams.AddMetadata("debtor_id", req.DebtorID)
	linkParams.AddMetadata("case_id", req.CaseID)
	linkParams.Context = ctx

	link, err := acct.links.New(linkParams)
	if err != nil {
		c.logger.Error(ctx, "failed to create stripe payment link", err)
		return PaymentLink{}, wrapError("create payment link", err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "payment_link_id", Value: link.ID})
	c.logger.Info(ctx, "payment link created")
	return PaymentLink{ID: link.ID, URL: link.URL}, nil
}

// paymentMethods offers the Polish local methods only for złoty amounts.
func paymentMethods(currency string) []string {
	if currency == "pln" {
		return []string{"blik", "p24", "card"}
	}
	return []string{"card"}
}

func wrapError(step string, err error) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripego.ErrorTypeInvalidRequest {
		return fmt.Errorf("failed to %s: %w: %s", step, ErrInvalidRequest, stripeErr.Msg)
	}
	return fmt.Errorf("failed to %s: %w", step, err)
}
