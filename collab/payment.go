// ABOUTME: Payment processing for plan checkout
// ABOUTME: Simulated processor plus a Stripe PaymentIntent processor
package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// Charge is a one-off payment request.
type Charge struct {
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// Receipt identifies a completed charge.
type Receipt struct {
	Reference string
}

// PaymentProcessor charges the workspace owner.
type PaymentProcessor interface {
	Charge(ctx context.Context, charge Charge) (Receipt, error)
}

// SimulatedPaymentProcessor waits Latency and approves every positive charge.
type SimulatedPaymentProcessor struct {
	Latency Latency
}

func NewSimulatedPaymentProcessor() *SimulatedPaymentProcessor {
	return &SimulatedPaymentProcessor{Latency: Fixed(1500 * time.Millisecond)}
}

func (s *SimulatedPaymentProcessor) Charge(ctx context.Context, charge Charge) (Receipt, error) {
	if !charge.Amount.IsPositive() {
		return Receipt{}, fmt.Errorf("%w: amount must be positive", ErrPaymentDeclined)
	}
	if err := wait(ctx, s.Latency); err != nil {
		return Receipt{}, err
	}
	return Receipt{Reference: "sim_" + uuid.NewString()}, nil
}

// StripeConfig holds the settings for StripeProcessor.
type StripeConfig struct {
	SecretKey     string
	Currency      string
	PaymentMethod string
}

// StripeProcessor creates and confirms a PaymentIntent per charge.
type StripeProcessor struct {
	client        paymentintent.Client
	currency      string
	paymentMethod string
	logger        *zap.Logger
}

// NewStripeProcessor uses the default Stripe API backend.
func NewStripeProcessor(cfg StripeConfig, logger *zap.Logger) (*StripeProcessor, error) {
	return NewStripeProcessorWithBackend(cfg, stripe.GetBackend(stripe.APIBackend), logger)
}

// NewStripeProcessorWithBackend uses the given backend for every call.
func NewStripeProcessorWithBackend(cfg StripeConfig, backend stripe.Backend, logger *zap.Logger) (*StripeProcessor, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: stripe secret key", ErrMissingCredential)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeProcessor{
		client:        paymentintent.Client{B: backend, Key: cfg.SecretKey},
		currency:      currency,
		paymentMethod: cfg.PaymentMethod,
		logger:        logger,
	}, nil
}

func (p *StripeProcessor) Charge(ctx context.Context, charge Charge) (Receipt, error) {
	if !charge.Amount.IsPositive() {
		return Receipt{}, fmt.Errorf("%w: amount must be positive", ErrPaymentDeclined)
	}

	currency := charge.Currency
	if currency == "" {
		currency = p.currency
	}

	params := &stripe.PaymentIntentParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(charge.Amount.Shift(2).Round(0).IntPart()),
		Currency:    stripe.String(currency),
		Description: stripe.String(charge.Description),
		Confirm:     stripe.Bool(true),
	}
	if p.paymentMethod != "" {
		params.PaymentMethod = stripe.String(p.paymentMethod)
	}
	params.AutomaticPaymentMethods = &stripe.PaymentIntentAutomaticPaymentMethodsParams{
		Enabled:        stripe.Bool(true),
		AllowRedirects: stripe.String("never"),
	}
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := p.client.New(params)
	if err != nil {
		p.logger.Error("Failed to create payment intent",
			zap.String("amount", charge.Amount.String()),
			zap.String("currency", currency),
			zap.Error(err),
		)
		return Receipt{}, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		p.logger.Warn("Payment intent not settled",
			zap.String("payment_intent_id", pi.ID),
			zap.String("status", string(pi.Status)),
		)
		return Receipt{}, fmt.Errorf("%w: status %s", ErrPaymentDeclined, pi.Status)
	}

	p.logger.Info("Charged plan payment",
		zap.String("payment_intent_id", pi.ID),
		zap.String("amount", charge.Amount.String()),
	)
	return Receipt{Reference: pi.ID}, nil
}
