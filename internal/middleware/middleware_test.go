package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/identity/mocks"
)

func newRouter(v *mocks.Provider, reached *bool, missingMessage string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS())

	h := []gin.HandlerFunc{
		Authenticate(v, helpers.RespondWithErr, missingMessage),
		func(c *gin.Context) {
			*reached = true
			c.JSON(http.StatusOK, gin.H{"uid": CallerUID(c)})
		},
	}
	r.OPTIONS("/fn", h...)
	r.POST("/fn", h...)

	return r
}

func TestCORS_Preflight(t *testing.T) {
	v := &mocks.Provider{}
	reached := false

	req := httptest.NewRequest(http.MethodOptions, "/fn", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	newRouter(v, &reached, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.False(t, reached)
	v.AssertNotCalled(t, "VerifyIDToken", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		missing    string
		on         func(v *mocks.Provider)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Missing token"}`,
		},
		{
			name:       "missing token with custom message",
			missing:    "Unauthorized: Missing ID token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized: Missing ID token"}`,
		},
		{
			name:   "invalid token",
			header: "Bearer forged",
			on: func(v *mocks.Provider) {
				v.On("VerifyIDToken", mock.Anything, "forged").
					Return("", apperr.Wrap(apperr.ErrUnauthenticated, errors.New("signature invalid"), "Invalid token")).
					Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Invalid token"}`,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			on: func(v *mocks.Provider) {
				v.On("VerifyIDToken", mock.Anything, "good").Return("uid-1", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"uid":"uid-1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mocks.NewProvider(t)
			if tt.on != nil {
				tt.on(v)
			}

			reached := false
			req := httptest.NewRequest(http.MethodPost, "/fn", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			newRouter(v, &reached, tt.missing).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}
