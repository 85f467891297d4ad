package preferences

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rejigai/commission-tracker/internal/schedule"
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
	require.NoError(t, Migrate(db))
	return db
}

func newTestRouter(db *gorm.DB) *mux.Router {
	h := NewHandler(db)
	r := mux.NewRouter()
	r.HandleFunc("/api/preferences", h.Get).Methods("GET")
	r.HandleFunc("/api/preferences/selling-days/{month}", h.UpdateSellingDays).Methods("PUT")
	r.HandleFunc("/api/preferences/goals/{month}", h.UpdateGoal).Methods("PUT")
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRepositoryUpsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	require.NoError(t, repo.SetSellingDays(db, "2025-01", 22))
	require.NoError(t, repo.SetSellingDays(db, "2025-01", 18))
	require.NoError(t, repo.SetGoal(db, "2025-01", 12000))

	prefs, err := repo.Load(db)
	require.NoError(t, err)
	assert.Equal(t, 18, prefs.SellingDays["2025-01"])
	assert.Equal(t, 12000.0, prefs.Goals["2025-01"])
}

func TestUpdateAndGetPreferences(t *testing.T) {
	r := newTestRouter(openTestDB(t))

	rec := doJSON(t, r, "PUT", "/api/preferences/selling-days/2025-01", map[string]any{"days": 22})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "PUT", "/api/preferences/goals/2025-01", map[string]any{"goal": 9000.0})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "GET", "/api/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SellingDays map[string]int     `json:"sellingDays"`
		Goals       map[string]float64 `json:"goals"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 22, body.SellingDays["2025-01"])
	assert.Equal(t, 9000.0, body.Goals["2025-01"])
}

func TestUpdateSellingDaysInvalidInputStoresZero(t *testing.T) {
	db := openTestDB(t)
	r := newTestRouter(db)

	rec := doJSON(t, r, "PUT", "/api/preferences/selling-days/2025-01", map[string]any{"days": -3})
	require.Equal(t, http.StatusOK, rec.Code)

	prefs, err := NewRepository().Load(db)
	require.NoError(t, err)
	// Zero reads back as the 20-day default at evaluation time.
	assert.Equal(t, 0, prefs.SellingDays["2025-01"])
}

func TestUpdateGoalInvalidInputStoresThreshold(t *testing.T) {
	db := openTestDB(t)
	r := newTestRouter(db)

	rec := doJSON(t, r, "PUT", "/api/preferences/goals/2025-01", map[string]any{"goal": 0.0})
	require.Equal(t, http.StatusOK, rec.Code)

	prefs, err := NewRepository().Load(db)
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultPolicy.Threshold, prefs.Goals["2025-01"])
}

func TestUpdateRejectsBadMonthKey(t *testing.T) {
	r := newTestRouter(openTestDB(t))

	rec := doJSON(t, r, "PUT", "/api/preferences/selling-days/January", map[string]any{"days": 22})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, "PUT", "/api/preferences/goals/2025-13", map[string]any{"goal": 9000.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
