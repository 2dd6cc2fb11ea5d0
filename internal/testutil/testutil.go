package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// OpenDB returns a migrated in-memory SQLite database private to t.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func Toronto(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	return loc
}

// --------------------------------------------------
// Clock
// --------------------------------------------------

type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func CreateService(t *testing.T, db *gorm.DB, name string, minutes int) models.Service {
	t.Helper()
	s := models.Service{
		Name:        name,
		Category:    models.CategoryHomme,
		DurationMin: minutes,
		Price:       decimal.NewFromInt(20),
		IsActive:    true,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func CreateBarbers(t *testing.T, db *gorm.DB, names ...string) []models.Barber {
	t.Helper()
	out := make([]models.Barber, 0, len(names))
	for _, n := range names {
		b := models.Barber{Name: n, IsActive: true}
		require.NoError(t, db.Create(&b).Error)
		out = append(out, b)
	}
	return out
}
