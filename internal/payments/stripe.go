package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/models"
)

type paymentIntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type StripeIssuer struct {
	intents  paymentIntentCreator
	currency string
}

func NewStripeIssuer(sc *client.API, currency string) *StripeIssuer {
	return &StripeIssuer{
		intents:  sc.PaymentIntents,
		currency: currency,
	}
}

func (s *StripeIssuer) CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(req.Amount)),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}

	for key, value := range req.Metadata {
		v, err := metadataValue(value)
		if err != nil {
			return "", apperr.Wrap(apperr.ErrInvalidArgument, err, fmt.Sprintf("invalid metadata %q", key))
		}

		params.AddMetadata(key, v)
	}

	pi, err := s.intents.New(params)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrPaymentGateway, err, "PaymentIntent creation failed: "+gatewayMessage(err))
	}

	return pi.ClientSecret, nil
}

func metadataValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return "", err
		}

		return string(raw), nil
	}
}

func gatewayMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}

	return err.Error()
}
