package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/url"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	ResetTTL         = 15 * time.Minute
	ResetThrottle    = 60 * time.Second
	ResetMaxAttempts = 5
)

var (
	errInvalidChannel = httperr.Reject("invalid_channel", "Choose email or sms.")
	errInvalidReset   = httperr.Reject("invalid_reset", "Invalid or expired code.")
)

// ======================================================
// REQUEST
// ======================================================

type RequestPasswordReset struct {
	repo     domain.Repository
	notifier notify.Notifier
	clock    timezone.Clock
	baseURL  string
	logger   *slog.Logger
}

func NewRequestPasswordReset(
	repo domain.Repository,
	notifier notify.Notifier,
	clock timezone.Clock,
	baseURL string,
	logger *slog.Logger,
) *RequestPasswordReset {
	return &RequestPasswordReset{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.With("usecase", "request_password_reset"),
	}
}

// Execute answers the same way whether or not the username exists,
// has a destination for the channel, or is throttled.
func (uc *RequestPasswordReset) Execute(
	ctx context.Context,
	username string,
	channel string,
) error {

	if channel != models.ChannelEmail && channel != models.ChannelSMS {
		return errInvalidChannel
	}

	admin, err := uc.repo.FindAdminByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	to := admin.Email
	if channel == models.ChannelSMS {
		to = admin.Phone
	}
	if to == "" {
		uc.logger.WarnContext(ctx, "reset requested without destination",
			"admin_id", admin.ID, "channel", channel)
		return nil
	}

	now := uc.clock.Now()

	rl, err := uc.repo.GetRateLimit(ctx, admin.ID, channel)
	switch {
	case err == nil:
		if now.Sub(rl.LastSentAt) < ResetThrottle {
			uc.logger.InfoContext(ctx, "reset throttled", "admin_id", admin.ID, "channel", channel)
			return nil
		}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	secret, err := newResetSecret(channel)
	if err != nil {
		return err
	}

	req := &models.PasswordResetRequest{
		AdminUserID: admin.ID,
		TokenHash:   hashToken(secret),
		Channel:     channel,
		ExpiresAt:   now.Add(ResetTTL),
	}
	if err := uc.repo.CreateResetRequest(ctx, req); err != nil {
		return err
	}
	if err := uc.repo.TouchRateLimit(ctx, admin.ID, channel, now); err != nil {
		return err
	}

	if err := uc.notifier.Send(ctx, uc.message(admin, channel, to, secret)); err != nil {
		uc.logger.ErrorContext(ctx, "reset delivery failed", "admin_id", admin.ID, "error", err)
	}
	return nil
}

func (uc *RequestPasswordReset) message(
	admin *models.AdminUser,
	channel, to, secret string,
) notify.Message {

	if channel == models.ChannelSMS {
		return notify.Message{
			Channel: channel,
			To:      to,
			Body:    fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.", secret),
		}
	}

	link := fmt.Sprintf("%s/admin/reset?username=%s&token=%s",
		uc.baseURL, url.QueryEscape(admin.Username), url.QueryEscape(secret))
	return notify.Message{
		Channel: channel,
		To:      to,
		Subject: "Password reset",
		Body:    "Open this link within 15 minutes to choose a new password:\n" + link,
	}
}

func newResetSecret(channel string) (string, error) {
	if channel == models.ChannelSMS {
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%06d", n.Int64()), nil
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// ======================================================
// RESET
// ======================================================

type ResetPasswordInput struct {
	Username    string
	Token       string
	NewPassword string
}

type ResetPassword struct {
	repo   domain.Repository
	clock  timezone.Clock
	logger *slog.Logger
}

func NewResetPassword(
	repo domain.Repository,
	clock timezone.Clock,
	logger *slog.Logger,
) *ResetPassword {
	return &ResetPassword{
		repo:   repo,
		clock:  clock,
		logger: logger.With("usecase", "reset_password"),
	}
}

func (uc *ResetPassword) Execute(
	ctx context.Context,
	in ResetPasswordInput,
) error {

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}

	admin, err := uc.repo.FindAdminByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, domain.ErrNotFound) {
		return errInvalidReset
	}
	if err != nil {
		return err
	}

	now := uc.clock.Now()
	active, err := uc.repo.ListActiveResetRequests(ctx, admin.ID, now)
	if err != nil {
		return err
	}

	given := []byte(hashToken(strings.TrimSpace(in.Token)))

	var match *models.PasswordResetRequest
	for i := range active {
		if active[i].Attempts >= ResetMaxAttempts {
			continue
		}
		if subtle.ConstantTimeCompare(given, []byte(active[i].TokenHash)) == 1 {
			match = &active[i]
			break
		}
	}

	if match == nil {
		// a wrong guess burns an attempt on every live request
		for i := range active {
			if active[i].Attempts >= ResetMaxAttempts {
				continue
			}
			active[i].Attempts++
			if err := uc.repo.UpdateResetRequest(ctx, &active[i]); err != nil {
				return err
			}
		}
		return errInvalidReset
	}

	match.UsedAt = &now
	if err := uc.repo.UpdateResetRequest(ctx, match); err != nil {
		return err
	}

	admin.PasswordHash = hash
	if err := uc.repo.UpdateAdmin(ctx, admin); err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "admin password reset", "admin_id", admin.ID, "channel", match.Channel)
	return nil
}
