package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/account"
)

type AuthHandler struct {
	customerLogin *account.CustomerLogin
	adminLogin    *account.AdminLogin
	requestReset  *account.RequestPasswordReset
	resetPassword *account.ResetPassword
	settings      *account.UpdateAdminSettings
	sessions      *session.Manager
	secure        bool
	logger        *slog.Logger
}

func NewAuthHandler(
	customerLogin *account.CustomerLogin,
	adminLogin *account.AdminLogin,
	requestReset *account.RequestPasswordReset,
	resetPassword *account.ResetPassword,
	settings *account.UpdateAdminSettings,
	sessions *session.Manager,
	secure bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		customerLogin: customerLogin,
		adminLogin:    adminLogin,
		requestReset:  requestReset,
		resetPassword: resetPassword,
		settings:      settings,
		sessions:      sessions,
		secure:        secure,
		logger:        logger,
	}
}

// --------- Requests ---------

type CustomerLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username" binding:"required"`
	Channel  string `json:"channel" binding:"required"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type AdminSettingsRequest struct {
	CurrentPassword string  `json:"current_password" binding:"required"`
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	NewPassword     *string `json:"new_password"`
}

// --------- Handlers ---------

func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.customerLogin.Execute(c.Request.Context(), account.CustomerLoginInput{
		Phone:    req.Phone,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err, "login_failed")
		return
	}

	token, ok := h.startSession(c, user.ID, session.RoleCustomer)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.adminLogin.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err, "login_failed")
		return
	}

	token, ok := h.startSession(c, admin.ID, session.RoleAdmin)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": admin,
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.secure)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.requestReset.Execute(c.Request.Context(), req.Username, req.Channel); err != nil {
		writeError(c, h.logger, err, "reset_request_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If that account exists, a reset message is on its way.",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.resetPassword.Execute(c.Request.Context(), account.ResetPasswordInput{
		Username:    req.Username,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeError(c, h.logger, err, "reset_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated. You can sign in now."})
}

func (h *AuthHandler) UpdateAdminSettings(c *gin.Context) {
	adminID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Please sign in.")
		return
	}

	var req AdminSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.settings.Execute(c.Request.Context(), account.UpdateAdminSettingsInput{
		AdminID:         adminID,
		CurrentPassword: req.CurrentPassword,
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(c, h.logger, err, "settings_failed")
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AuthHandler) startSession(c *gin.Context, subject uint, role string) (string, bool) {
	token, err := h.sessions.Issue(subject, role)
	if err != nil {
		writeError(c, h.logger, err, "session_failed")
		return "", false
	}
	middleware.SetSessionCookie(c, h.sessions, token, h.secure)
	return token, true
}
