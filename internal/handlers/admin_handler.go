package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/accounts"
	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/middleware"
)

type AdminHandler struct {
	l        logger.Provider
	accounts *accounts.Service
}

func NewAdminHandler(l logger.Provider, svc *accounts.Service) *AdminHandler {
	return &AdminHandler{l: l, accounts: svc}
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	body, ok := bindFields(c)
	if !ok {
		return
	}

	req := accounts.CreateAdminRequest{
		Email:    body.text("email"),
		Password: body.text("password"),
		Name:     body.text("name"),
		Role:     body.text("role"),
	}

	uid, err := h.accounts.CreateAdmin(c, middleware.CallerUID(c), &req)
	if err != nil {
		h.l(c).Errorf("create admin: %s", err)
		helpers.RespondWithErr(c, err)
		return
	}

	h.l(c).Infof("admin %s created with role %q", uid, req.Role)
	c.JSON(http.StatusOK, gin.H{"message": "Admin created", "uid": uid})
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	body, ok := bindFields(c)
	if !ok {
		return
	}

	uid := body.text("uid")
	if err := h.accounts.DeleteAdmin(c, middleware.CallerUID(c), uid); err != nil {
		h.l(c).Errorf("delete admin %q: %s", uid, err)
		helpers.RespondWithErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin successfully deleted"})
}
