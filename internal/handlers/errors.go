package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// writeError maps use case errors onto HTTP responses. Anything it does
// not recognise is logged and reported as fallback.
func writeError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	if be, ok := httperr.AsBusiness(err); ok {
		status := http.StatusBadRequest
		if be.Code == domain.CodeContactDenied {
			status = http.StatusForbidden
		}
		httperr.Write(c, status, be.Code, be.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, account.ErrNotFound):
		httperr.NotFound(c, "not_found", "Not found.")

	case errors.Is(err, catalog.ErrDuplicateName):
		httperr.Write(c, http.StatusConflict, "duplicate_name", "duplicate name")

	case errors.Is(err, account.ErrUsernameTaken):
		httperr.Write(c, http.StatusConflict, "username_taken", "That username is already taken.")

	case errors.Is(err, account.ErrInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")

	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			"route", c.FullPath(),
			"code", fallback,
			"error", err,
		)
		httperr.Internal(c, fallback, "Something went wrong. Please try again.")
	}
}
