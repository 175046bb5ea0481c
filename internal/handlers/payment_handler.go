package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/payments"
)

type PaymentRequest struct {
	Amount   float64        `json:"amount"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata"`
}

type PaymentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentHandler struct {
	l      logger.Provider
	issuer payments.Issuer
}

func NewPaymentHandler(l logger.Provider, issuer payments.Issuer) *PaymentHandler {
	return &PaymentHandler{l: l, issuer: issuer}
}

func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentRequest
	if err := helpers.BindCallable(c, &req); err != nil {
		helpers.RespondCallableError(c, err)
		return
	}

	clientSecret, err := h.issuer.CreatePaymentIntent(c, &models.PaymentIntentRequest{
		Amount:   req.Amount,
		Email:    req.Email,
		Metadata: req.Metadata,
	})
	if err != nil {
		h.l(c).Errorf("create payment intent: %s", err)
		helpers.RespondCallableError(c, err)
		return
	}

	helpers.RespondCallable(c, PaymentResponse{ClientSecret: clientSecret})
}
