package models

type PaymentIntentRequest struct {
	Amount   float64
	Email    string
	Metadata map[string]any
}
