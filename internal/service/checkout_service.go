package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"cryzo-api/internal/broker"
	"cryzo-api/internal/models"
	"cryzo-api/internal/util"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// CheckoutService maps carts onto hosted payment sessions.
type CheckoutService struct {
	publisher   *broker.EventPublisher
	frontendURL string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout service. The Stripe key is
// process-wide, matching how the SDK is designed.
func NewCheckoutService(secretKey, frontendURL string, timeout time.Duration, publisher *broker.EventPublisher) *CheckoutService {
	stripe.Key = secretKey
	return &CheckoutService{
		publisher:   publisher,
		frontendURL: frontendURL,
		timeout:     timeout,
		logger:      util.GetLogger(),
	}
}

// CheckoutRequest is the inbound cart.
type CheckoutRequest struct {
	Items         []models.CartItem `json:"items"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	SuccessURL    string            `json:"successUrl,omitempty"`
	CancelURL     string            `json:"cancelUrl,omitempty"`
}

// CheckoutResponse carries the gateway session through unchanged.
type CheckoutResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// MinorUnits converts a price in major currency units to integer minor
// units, rounding half up.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateSession requests a hosted checkout session for the cart.
func (s *CheckoutService) CreateSession(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.CreateSession")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(fmt.Sprintf("%s %s", item.Brand, item.Model)),
			Description: stripe.String(fmt.Sprintf("%s • %s", item.Grade, item.Storage)),
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				UnitAmount:  stripe.Int64(MinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
		total += item.Price * float64(item.Quantity)
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = s.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = s.frontendURL + "/checkout/cancel"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		util.CheckoutSessionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("checkout session failed: %w", err)
	}

	util.CheckoutSessionsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int("items", len(req.Items)))

	if s.publisher != nil {
		if err := s.publisher.PublishCheckoutStarted(ctx, sess.ID, req.CustomerEmail, total, len(req.Items)); err != nil {
			s.logger.Error("Failed to publish CheckoutStarted event", zap.Error(err))
		}
	}

	return &CheckoutResponse{
		Success:   true,
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}
