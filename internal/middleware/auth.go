package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/identity"
	"github.com/farellandr/melaka-tickets/internal/logger"
)

const CtxUIDKey = "uid"

// Authenticate verifies the bearer ID token and stores the caller uid in the context.
// reject writes the failure in the convention of the function being called. A non-empty
// missingMessage replaces the default message when no token is sent.
func Authenticate(v identity.Verifier, reject func(c *gin.Context, err error), missingMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken, err := identity.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			if missingMessage != "" {
				err = apperr.Wrap(apperr.ErrUnauthenticated, err, missingMessage)
			}
			reject(c, err)
			return
		}

		uid, err := v.VerifyIDToken(c, idToken)
		if err != nil {
			logger.FromContext(c).Warningf("id token rejected: %s", err)
			reject(c, err)
			return
		}

		logger.FromContext(c).SetLabel("caller_uid", uid)
		c.Set(CtxUIDKey, uid)
		c.Next()
	}
}

func CallerUID(c *gin.Context) string {
	return c.GetString(CtxUIDKey)
}
