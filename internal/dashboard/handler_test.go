package dashboard

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rejigai/commission-tracker/internal/deal"
	"github.com/rejigai/commission-tracker/internal/preferences"
	"github.com/rejigai/commission-tracker/internal/sheets"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, deal.Migrate(db))
	require.NoError(t, preferences.Migrate(db))
	return db
}

func TestDashboardView(t *testing.T) {
	db := openTestDB(t)
	dealRepo := deal.NewRepository()
	prefRepo := preferences.NewRepository()

	churn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	seed := []deal.Deal{
		{
			ID:           1,
			Name:         "Acme",
			CloseDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			Subscription: 8000,
			Setup:        2000,
			Cycle:        deal.CycleMonthly,
		},
		{
			ID:           2,
			Name:         "Globex",
			CloseDate:    time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
			Subscription: 500,
			Cycle:        deal.CycleMonthly,
			ChurnDate:    &churn,
		},
	}
	require.NoError(t, dealRepo.ReplaceAll(db, seed))
	require.NoError(t, prefRepo.SetSellingDays(db, "2025-02", 20))
	require.NoError(t, prefRepo.SetGoal(db, "2025-02", 12000))

	syncService := sheets.NewService(db, sheets.NewClient("", zerolog.Nop()), dealRepo, zerolog.Nop())
	h := NewHandler(db, dealRepo, prefRepo, syncService)
	h.now = func() time.Time {
		// A Friday; 10 business days into February 2025.
		return time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)
	}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest("GET", "/api/dashboard", nil))
	require.Equal(t, 200, rec.Code)

	var view View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))

	require.Len(t, view.Deals, 2)
	// Globex churns March 1; both deals still active on Feb 14.
	assert.Equal(t, 2, view.ActiveDeals)

	// January: Acme 10000 (8000 + 2000 setup) + Globex 500.
	jan := view.Breakdown["2025-01"]
	assert.InDelta(t, 10500.0, jan.Revenue, 0.001)
	assert.InDelta(t, (10500-view.Threshold)*view.Rate, jan.Commission, 0.001)

	// February: both renewals, no setup.
	feb := view.Breakdown["2025-02"]
	assert.InDelta(t, 8500.0, feb.Revenue, 0.001)

	// Only January has fully elapsed.
	assert.InDelta(t, jan.Commission, view.TotalCommission, 0.001)

	assert.Equal(t, "2025-02", view.Pacing.MonthKey)
	assert.Equal(t, 10, view.Pacing.BusinessDaysElapsed)
	assert.Equal(t, 20, view.Pacing.TotalSellingDays)
	assert.Equal(t, 12000.0, view.Pacing.MonthlyGoal)
	assert.InDelta(t, 50.0, view.Pacing.DaysProgress, 0.001)
	assert.InDelta(t, 6000.0, view.Pacing.ExpectedGoalRevenue, 0.001)
	assert.InDelta(t, 2500.0, view.Pacing.GoalVariance, 0.001)

	assert.Contains(t, view.Years, "2025")
	assert.Contains(t, view.Years, "2026")
	assert.InDelta(t, sumYear(view, "2025"), view.Years["2025"].Revenue, 0.001)
}

func sumYear(v View, year string) float64 {
	var total float64
	for key, b := range v.Breakdown {
		if key[:4] == year {
			total += b.Revenue
		}
	}
	return total
}
