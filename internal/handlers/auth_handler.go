package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/identity"
)

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler issues ID tokens from the local identity provider. It is only routed when
// the local backend is active.
type AuthHandler struct {
	provider *identity.LocalProvider
}

func NewAuthHandler(p *identity.LocalProvider) *AuthHandler {
	return &AuthHandler{provider: p}
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	uid, token, err := h.provider.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		helpers.RespondWithErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": uid, "idToken": token})
}
