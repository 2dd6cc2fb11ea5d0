package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/bookingcode"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/infra/ratelimit"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *slog.Logger
	Audit    *audit.Dispatcher
	Limiter  ratelimit.Store
	Sessions *session.Manager
	Notifier notify.Notifier
	Clock    timezone.Clock
}

// ShopHours builds the opening hours from configuration.
func ShopHours(cfg *config.Config) (domain.ShopHours, error) {
	loc := cfg.Location()
	hours := domain.DefaultShopHours(loc)

	var err error
	if hours.Open, err = timezone.ParseTimeHHMM(cfg.Shop.Open); err != nil {
		return hours, fmt.Errorf("shop open: %w", err)
	}
	if hours.Close, err = timezone.ParseTimeHHMM(cfg.Shop.Close); err != nil {
		return hours, fmt.Errorf("shop close: %w", err)
	}
	if hours.LastEnd, err = timezone.ParseTimeHHMM(cfg.Shop.LastEnd); err != nil {
		return hours, fmt.Errorf("shop last end: %w", err)
	}
	if hours.ClosedDay, err = cfg.ClosedDay(); err != nil {
		return hours, err
	}
	return hours, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config
	logger := d.Logger

	hours, err := ShopHours(cfg)
	if err != nil {
		return err
	}
	loc := hours.Location

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Observe(logger),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.Session(d.Sessions, cfg.CookieSecure, logger),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)

	settings := ucAppointment.Settings{
		Hours:            hours,
		Clock:            d.Clock,
		PublicCapacity:   cfg.Shop.PublicCapacity,
		CustomerCapacity: cfg.Shop.CustomerCapacity,
	}
	locks := ucAppointment.NewDayLocks()

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	validateUC := ucAppointment.NewValidateBooking(appointmentRepo, settings)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, settings)
	createUC := ucAppointment.NewCreateBooking(appointmentRepo, validateUC, bookingcode.New(), locks, d.Audit, logger)
	editUC := ucAppointment.NewEditBooking(appointmentRepo, validateUC, locks, d.Audit, logger)
	cancelAdminUC := ucAppointment.NewCancelBookingAdmin(appointmentRepo, d.Clock, d.Audit)
	cancelSelfUC := ucAppointment.NewCancelBookingSelfService(appointmentRepo, d.Clock, logger)
	findUC := ucAppointment.NewFindBookingsByContact(appointmentRepo)
	claimUC := ucAppointment.NewClaimGuestBookings(appointmentRepo, logger)
	mineUC := ucAppointment.NewListMyAppointments(appointmentRepo, claimUC)
	byDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, loc)
	byWeekUC := ucAppointment.NewListAppointmentsByWeek(appointmentRepo, hours)
	byMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, hours)

	// ======================================================
	// USE CASES: CATALOG / ACCOUNTS
	// ======================================================
	listCatalogUC := ucCatalog.NewListCatalog(catalogRepo)
	manageCatalogUC := ucCatalog.NewManageCatalog(catalogRepo, d.Audit)

	customerLoginUC := ucAccount.NewCustomerLogin(accountRepo, claimUC, logger)
	adminLoginUC := ucAccount.NewAdminLogin(accountRepo)
	requestResetUC := ucAccount.NewRequestPasswordReset(accountRepo, d.Notifier, d.Clock, cfg.PublicBaseURL, logger)
	resetUC := ucAccount.NewResetPassword(accountRepo, d.Clock, logger)
	settingsUC := ucAccount.NewUpdateAdminSettings(accountRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	shopHandler := handlers.NewShopHandler(hours)
	publicHandler := handlers.NewPublicHandler(listCatalogUC, availabilityUC, createUC, findUC, cancelSelfUC, loc, logger)
	meHandler := handlers.NewMeHandler(accountRepo, mineUC, createUC, editUC, cancelSelfUC, loc, logger)
	authHandler := handlers.NewAuthHandler(
		customerLoginUC,
		adminLoginUC,
		requestResetUC,
		resetUC,
		settingsUC,
		d.Sessions,
		cfg.CookieSecure,
		logger,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		byDateUC,
		byWeekUC,
		byMonthUC,
		availabilityUC,
		createUC,
		editUC,
		cancelAdminUC,
		loc,
		logger,
	)
	catalogHandler := handlers.NewCatalogHandler(listCatalogUC, manageCatalogUC, logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc)

	limit := func(group string) gin.HandlerFunc {
		return middleware.RateLimit(d.Limiter, group, cfg.RateLimitPerMinute, time.Minute, logger)
	}

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/")
		public.Use(limit("public"))
		{
			public.GET("/shop", shopHandler.Get)
			public.GET("/services", publicHandler.Services)
			public.GET("/availability", publicHandler.Availability)
			public.POST("/appointments", publicHandler.Create)
			public.POST("/appointments/lookup", publicHandler.Lookup)
			public.POST("/appointments/:id/cancel", publicHandler.Cancel)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/")
		auth.Use(limit("auth"))
		{
			auth.POST("/auth/login", authHandler.CustomerLogin)
			auth.POST("/auth/logout", authHandler.Logout)
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/admin/password/forgot", authHandler.ForgotPassword)
			auth.POST("/admin/password/reset", authHandler.ResetPassword)
		}

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.RequireRole(session.RoleCustomer))
		{
			me.GET("", meHandler.GetMe)
			me.GET("/appointments", meHandler.ListAppointments)
			me.POST("/appointments", meHandler.CreateAppointment)
			me.PUT("/appointments/:id", meHandler.UpdateAppointment)
			me.POST("/appointments/:id/cancel", meHandler.CancelAppointment)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(session.RoleAdmin))
		{
			admin.PUT("/settings", authHandler.UpdateAdminSettings)

			admin.GET("/availability", appointmentHandler.Availability)
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/week", appointmentHandler.ListByWeek)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.POST("/appointments", appointmentHandler.Create)
			admin.PUT("/appointments/:id", appointmentHandler.Update)
			admin.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

			admin.GET("/services", catalogHandler.ListServices)
			admin.POST("/services", catalogHandler.CreateService)
			admin.PUT("/services/:id", catalogHandler.UpdateService)
			admin.PATCH("/services/:id/active", catalogHandler.SetServiceActive)

			admin.GET("/barbers", catalogHandler.ListBarbers)
			admin.POST("/barbers", catalogHandler.CreateBarber)
			admin.PUT("/barbers/:id", catalogHandler.UpdateBarber)
			admin.PATCH("/barbers/:id/active", catalogHandler.SetBarberActive)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
