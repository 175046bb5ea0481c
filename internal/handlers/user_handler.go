package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/accounts"
	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/middleware"
)

type UserHandler struct {
	l        logger.Provider
	accounts *accounts.Service
}

func NewUserHandler(l logger.Provider, svc *accounts.Service) *UserHandler {
	return &UserHandler{l: l, accounts: svc}
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	body, ok := bindFields(c)
	if !ok {
		return
	}

	uid := body.text("uid")
	if err := h.accounts.DeleteUser(c, middleware.CallerUID(c), uid); err != nil {
		h.l(c).Errorf("delete user %q: %s", uid, err)
		helpers.RespondWithErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
