package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/helpers"
)

// bodyFields is a loosely decoded JSON object. Field types are checked by the services,
// after the caller has been authorized.
type bodyFields map[string]any

// text returns the string value of key. Missing and non-string values read as "".
func (f bodyFields) text(key string) string {
	s, _ := f[key].(string)
	return s
}

// bindFields binds an optional JSON object body. An empty body yields no fields.
func bindFields(c *gin.Context) (bodyFields, bool) {
	fields := bodyFields{}
	if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return nil, false
	}

	return fields, true
}
