package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/booking"
	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/middleware"
)

type BookingHandler struct {
	l         logger.Provider
	finalizer *booking.Finalizer
}

func NewBookingHandler(l logger.Provider, f *booking.Finalizer) *BookingHandler {
	return &BookingHandler{l: l, finalizer: f}
}

func (h *BookingHandler) FinalizeBooking(c *gin.Context) {
	var req booking.Request
	if err := helpers.BindCallable(c, &req); err != nil {
		helpers.RespondCallableError(c, err)
		return
	}

	result, err := h.finalizer.Finalize(c, middleware.CallerUID(c), &req)
	if err != nil {
		h.l(c).Errorf("finalize booking: %s", err)
		helpers.RespondCallableError(c, err)
		return
	}

	helpers.RespondCallable(c, result)
}
