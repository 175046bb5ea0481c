package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

// Callable functions wrap their payload as {"data": ...} and answer {"result": ...}
// or {"error": {"status": ..., "message": ...}}.
type callableRequest struct {
	Data json.RawMessage `json:"data"`
}

type CallableError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type callableErrorResponse struct {
	Error CallableError `json:"error"`
}

type callableResult struct {
	Result any `json:"result"`
}

var callableStatus = map[int]string{
	http.StatusBadRequest:          "INVALID_ARGUMENT",
	http.StatusUnauthorized:        "UNAUTHENTICATED",
	http.StatusForbidden:           "PERMISSION_DENIED",
	http.StatusInternalServerError: "INTERNAL",
}

// BindCallable decodes the data field of a callable request into dst.
func BindCallable(c *gin.Context, dst any) error {
	var req callableRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Wrap(apperr.ErrInvalidArgument, err, "Bad Request: invalid JSON body")
	}

	if len(req.Data) == 0 || string(req.Data) == "null" {
		return apperr.New(apperr.ErrInvalidArgument, "Bad Request: missing data")
	}

	if err := json.Unmarshal(req.Data, dst); err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, err, "Bad Request: invalid data")
	}

	return nil
}

func RespondCallable(c *gin.Context, result any) {
	c.JSON(http.StatusOK, callableResult{Result: result})
}

func RespondCallableError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, callableErrorResponse{
		Error: CallableError{
			Status:  callableStatus[status],
			Message: err.Error(),
		},
	})
}
