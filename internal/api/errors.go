package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/balkashynov/tally/internal/db"
)

// statusFor maps the service error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, db.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, db.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, db.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as {"detail": ...}. Store failures are logged and
// hidden behind a generic message.
func (h *handler) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := db.Message(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		detail = "Internal server error."
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorOut{Detail: detail})
}

// invalid wraps a request decoding problem as a validation error
func invalid(format string, args ...any) error {
	return &db.Error{Kind: db.ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// bindingError turns gin/validator output into a validation error
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalid("invalid request body: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonPath(fe.Namespace())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gtfield":
			msgs = append(msgs, field+" must be after "+strings.ToLower(snake(fe.Param())))
		case "min":
			msgs = append(msgs, field+" must contain at least "+fe.Param()+" item(s)")
		case "max":
			msgs = append(msgs, field+" must be at most "+fe.Param()+" characters")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return invalid("%s", strings.Join(msgs, "; "))
}

// jsonPath drops the struct name from a validator namespace
func jsonPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// snake converts a Go field name like StartTime to start_time
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
