package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tnguye65/pokecollection/internal/common"
)

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

// statusFor maps service errors onto HTTP status codes and the message
// shown to clients. Unknown errors map to 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return http.StatusBadRequest, common.ErrDuplicateUsername.Error()
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusBadRequest, common.ErrDuplicateEmail.Error()
	case errors.Is(err, common.ErrWeakPassword):
		return http.StatusBadRequest, common.ErrWeakPassword.Error()
	case errors.Is(err, common.ErrWrongPassword):
		return http.StatusBadRequest, common.ErrWrongPassword.Error()
	case errors.Is(err, common.ErrInvalidQuantity):
		return http.StatusBadRequest, common.ErrInvalidQuantity.Error()
	case errors.Is(err, common.ErrCardNotFound):
		return http.StatusBadRequest, common.ErrCardNotFound.Error()
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrMalformedToken),
		errors.Is(err, common.ErrInvalidSignature):
		return http.StatusUnauthorized, "invalid or expired session"

	case errors.Is(err, common.ErrItemNotFound):
		return http.StatusNotFound, common.ErrItemNotFound.Error()
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, common.ErrUserNotFound.Error()

	case errors.Is(err, common.ErrCatalogUnavailable):
		return http.StatusBadGateway, common.ErrCatalogUnavailable.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

// writeError is the single place where service errors become responses.
func (s *RESTServer) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		if s.opts.Debug {
			msg = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, errorBody(msg))
}
