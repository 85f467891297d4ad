// Package dashboard assembles the full view the frontend renders: the deal
// list, the projected month-by-month breakdown, the yearly rollup, earned
// commission to date, and the current month's pacing snapshot. Nothing here is
// stored; every request recomputes the projection from the deal list.
package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rejigai/commission-tracker/internal/deal"
	"github.com/rejigai/commission-tracker/internal/pacing"
	"github.com/rejigai/commission-tracker/internal/preferences"
	"github.com/rejigai/commission-tracker/internal/schedule"
	"github.com/rejigai/commission-tracker/internal/sheets"
	"gorm.io/gorm"
)

type Handler struct {
	DB    *gorm.DB
	Deals deal.Repository
	Prefs preferences.Repository
	Sync  *sheets.Service

	// now is swappable in tests.
	now func() time.Time
}

func NewHandler(db *gorm.DB, deals deal.Repository, prefs preferences.Repository, sync *sheets.Service) *Handler {
	return &Handler{
		DB:    db,
		Deals: deals,
		Prefs: prefs,
		Sync:  sync,
		now:   time.Now,
	}
}

// View is the dashboard payload.
type View struct {
	Deals           []deal.Deal                       `json:"deals"`
	ActiveDeals     int                               `json:"activeDeals"`
	Breakdown       map[string]schedule.MonthBucket   `json:"breakdown"`
	Years           map[string]schedule.YearAggregate `json:"years"`
	TotalCommission float64                           `json:"totalCommission"`
	Pacing          pacing.Snapshot                   `json:"pacing"`
	Sync            sheets.Status                     `json:"sync"`
	Threshold       float64                           `json:"threshold"`
	Rate            float64                           `json:"rate"`
}

// Get handles GET /api/dashboard.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	deals, err := h.Deals.List(h.DB)
	if err != nil {
		http.Error(w, "could not load deals", http.StatusInternalServerError)
		return
	}

	prefs, err := h.Prefs.Load(h.DB)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}

	policy := schedule.DefaultPolicy
	breakdown := schedule.Build(deals, policy, schedule.DefaultHorizon(now))

	active := 0
	for _, d := range deals {
		if d.Active(now) {
			active++
		}
	}

	view := View{
		Deals:           deals,
		ActiveDeals:     active,
		Breakdown:       breakdown,
		Years:           schedule.YearlyRollup(breakdown),
		TotalCommission: schedule.EarnedCommission(breakdown, now),
		Pacing:          pacing.Evaluate(breakdown, prefs, now),
		Sync:            h.Sync.Status(),
		Threshold:       policy.Threshold,
		Rate:            policy.Rate,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}
