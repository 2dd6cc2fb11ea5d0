package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/infra/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

type server struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.OpenDB(t)
	cfg := config.Default()
	cfg.RateLimitPerMinute = 1000

	require.NoError(t, dbpkg.Seed(context.Background(), db, cfg.SeedAdminUsername, cfg.SeedAdminPassword, logger))

	loc := testutil.Toronto(t)
	r := gin.New()
	require.NoError(t, RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Limiter:  ratelimit.NewMemoryStore(),
		Sessions: session.NewManager("test", time.Hour, 30*time.Minute),
		Notifier: notify.NewLogNotifier(logger),
		Clock:    testutil.NewClock(time.Date(2026, 3, 10, 9, 0, 0, 0, loc)),
	}))

	return &server{t: t, db: db, engine: r}
}

func (s *server) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *server) serviceID(name string) uint {
	s.t.Helper()
	var svc models.Service
	require.NoError(s.t, s.db.Where("name = ?", name).First(&svc).Error)
	return svc.ID
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestHealthAndShop(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/shop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"timezone": "America/Toronto",
		"open": "11:00",
		"close": "19:00",
		"last_end": "18:30",
		"closed_day": "Monday",
		"slot_minutes": 30
	}`, w.Body.String())
}

func TestGuestBookingFlow(t *testing.T) {
	s := newServer(t)
	cut := s.serviceID("Coupe (Homme)")

	w := s.do(http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu struct {
		Popular []struct{ Name string } `json:"popular"`
		Other   []struct{ Name string } `json:"other"`
	}
	decode(t, w, &menu)
	assert.Len(t, menu.Popular, 2)
	assert.Len(t, menu.Other, 7)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/availability?date=2026-03-10&service_id=%d", cut), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		Slots []struct {
			Time        string `json:"time"`
			IsAvailable bool   `json:"is_available"`
		} `json:"slots"`
	}
	decode(t, w, &avail)
	assert.Len(t, avail.Slots, 16)

	w = s.do(http.MethodPost, "/api/appointments", map[string]any{
		"service_id":     cut,
		"date":           "2026-03-10",
		"time":           "12:00",
		"customer_name":  "Guest",
		"customer_phone": "514-555-0000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID          uint   `json:"id"`
		BookingCode string `json:"booking_code"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.BookingCode)

	w = s.do(http.MethodPost, "/api/appointments", map[string]any{
		"service_id":     cut,
		"date":           "2026-03-10",
		"time":           "12:15",
		"customer_name":  "Guest",
		"customer_phone": "5145550001",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "off_grid")

	w = s.do(http.MethodPost, "/api/appointments/lookup", map[string]any{
		"phone": "5145550000",
		"code":  created.BookingCode,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	cancelPath := fmt.Sprintf("/api/appointments/%d/cancel", created.ID)
	w = s.do(http.MethodPost, cancelPath, map[string]any{"phone": "5145550000", "code": "wrong"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, cancelPath, map[string]any{"phone": "5145550000", "code": created.BookingCode})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, cancelPath, map[string]any{"phone": "5145550000", "code": created.BookingCode})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRequiresSession(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/api/admin/appointments?date=2026-03-10", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/admin/login", map[string]any{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/admin/login", map[string]any{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	w = s.do(http.MethodPost, "/api/admin/appointments", map[string]any{
		"service_id":    s.serviceID("Coupe (Homme)"),
		"date":          "2026-03-10",
		"time":          "11:00",
		"customer_name": "Walk-in",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/admin/appointments?date=2026-03-10", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var snap struct {
		Version      string `json:"version"`
		Appointments []struct {
			CustomerName string `json:"customer_name"`
		} `json:"appointments"`
	}
	decode(t, w, &snap)
	require.Len(t, snap.Appointments, 1)
	assert.Equal(t, "Walk-in", snap.Appointments[0].CustomerName)
	assert.NotEmpty(t, snap.Version)

	w = s.do(http.MethodPost, "/api/admin/services", map[string]any{
		"name":         "Coupe (Homme)",
		"duration_min": 30,
	}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate name")

	w = s.do(http.MethodGet, "/api/admin/appointments/month?year=2026&month=3", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomerPortal(t *testing.T) {
	s := newServer(t)
	cut := s.serviceID("Coupe (Homme)")

	w := s.do(http.MethodPost, "/api/appointments", map[string]any{
		"service_id":     cut,
		"date":           "2026-03-10",
		"time":           "13:00",
		"customer_name":  "Sam",
		"customer_phone": "5145551234",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/me/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", map[string]any{"phone": "(514) 555-1234", "name": "Sam"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	w = s.do(http.MethodGet, "/api/me/appointments", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`, "guest booking is claimed on login")

	w = s.do(http.MethodGet, "/api/admin/appointments?date=2026-03-10", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "customers are not admins")
}
