package payments

import (
	"context"
	"math"

	"github.com/farellandr/melaka-tickets/internal/models"
)

const DefaultCurrency = "myr"

//go:generate mockery --name Issuer --output ./mocks
type Issuer interface {
	// CreatePaymentIntent returns the client secret of a new payment intent.
	CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (string, error)
}

// ToMinorUnits converts a decimal currency amount (RM) to sen.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
