// internal/deal/handler.go
package deal

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rejigai/commission-tracker/internal/utils"
	"gorm.io/gorm"
)

// Handler wraps the DB and repository for the deal routes.
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

// Create handles POST /api/deals.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto createDealRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	d, err := dto.toDeal()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repository.Save(h.DB, &d); err != nil {
		http.Error(w, "failed to save deal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(d)
}

// List handles GET /api/deals.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB)
	if err != nil {
		http.Error(w, "failed to list deals", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /api/deals/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	d, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

// SetChurn handles PUT /api/deals/{id}/churn.
func (h *Handler) SetChurn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	var req churnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	churn, err := utils.ParseDate(req.ChurnDate)
	if err != nil {
		http.Error(w, "the 'churnDate' field must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}

	d, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}
	if err := h.Repository.SetChurn(h.DB, d.ID, &churn); err != nil {
		http.Error(w, "failed to update deal", http.StatusInternalServerError)
		return
	}
	d.ChurnDate = &churn

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

// ClearChurn handles DELETE /api/deals/{id}/churn and reactivates the deal.
func (h *Handler) ClearChurn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	d, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}
	if err := h.Repository.SetChurn(h.DB, d.ID, nil); err != nil {
		http.Error(w, "failed to update deal", http.StatusInternalServerError)
		return
	}
	d.ChurnDate = nil

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}
