// internal/preferences/handler.go
package preferences

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rejigai/commission-tracker/internal/schedule"
	"gorm.io/gorm"
)

// Handler wraps the DB and repository for the preference routes.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

type updateSellingDaysRequest struct {
	Days *int `json:"days"`
}

type updateGoalRequest struct {
	Goal *float64 `json:"goal"`
}

func monthVar(r *http.Request) (string, bool) {
	month := mux.Vars(r)["month"]
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", false
	}
	return month, true
}

// Get handles GET /api/preferences.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.Repository.Load(h.DB)
	if err != nil {
		http.Error(w, "failed to load preferences", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"sellingDays": prefs.SellingDays,
		"goals":       prefs.Goals,
	})
}

// UpdateSellingDays handles PUT /api/preferences/selling-days/{month}.
// Missing or non-positive input stores zero, which reads back as the default
// of 20 at evaluation time; it never rejects the update.
func (h *Handler) UpdateSellingDays(w http.ResponseWriter, r *http.Request) {
	month, ok := monthVar(r)
	if !ok {
		http.Error(w, "invalid month key, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	days := 0
	var req updateSellingDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Days != nil && *req.Days > 0 {
		days = *req.Days
	}

	if err := h.Repository.SetSellingDays(h.DB, month, days); err != nil {
		http.Error(w, "failed to save selling days", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SellingDaysPref{Month: month, Days: days})
}

// UpdateGoal handles PUT /api/preferences/goals/{month}. Missing or invalid
// input falls back to the quota threshold instead of rejecting.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	month, ok := monthVar(r)
	if !ok {
		http.Error(w, "invalid month key, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	goal := schedule.DefaultPolicy.Threshold
	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Goal != nil && *req.Goal > 0 {
		goal = *req.Goal
	}

	if err := h.Repository.SetGoal(h.DB, month, goal); err != nil {
		http.Error(w, "failed to save monthly goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MonthlyGoalPref{Month: month, Goal: goal})
}
