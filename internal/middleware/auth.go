package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/session"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Session resolves the caller from the session cookie or a Bearer
// header. Anonymous requests pass through untouched.
func Session(m *session.Manager, secure bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := readToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.Parse(token)
		if err != nil {
			if errors.Is(err, session.ErrEpoch) || errors.Is(err, session.ErrIdle) {
				logger.InfoContext(c.Request.Context(), "session dropped", "reason", err.Error())
			}
			if fromCookie {
				ClearSessionCookie(c, secure)
			}
			c.Next()
			return
		}

		if claims.Role == session.RoleAdmin && fromCookie {
			if refreshed, err := m.Refresh(claims); err == nil {
				SetSessionCookie(c, m, refreshed, secure)
			}
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers without a session of the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(ContextUserRole)
		if got != role {
			httperr.Unauthorized(c, "unauthorized", "Please sign in.")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated subject, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func Role(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

func SetSessionCookie(c *gin.Context, m *session.Manager, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(m.TTL().Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}

func readToken(c *gin.Context) (string, bool) {
	if v, err := c.Cookie(session.CookieName); err == nil && v != "" {
		return v, true
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1]), false
	}
	return "", false
}
