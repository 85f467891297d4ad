// internal/deal/dto.go
package deal

import (
	"errors"
	"strings"

	"github.com/rejigai/commission-tracker/internal/utils"
)

type createDealRequest struct {
	Name         string   `json:"name"`
	Close        string   `json:"close"`
	Subscription *float64 `json:"subscription"`
	Setup        *float64 `json:"setup"`
	Cycle        string   `json:"cycle"`
}

type churnRequest struct {
	ChurnDate string `json:"churnDate"`
}

// toDeal validates the payload and builds the model. A missing setup fee
// defaults to zero rather than erroring.
func (req createDealRequest) toDeal() (Deal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Deal{}, errors.New("the 'name' field is required")
	}
	if req.Subscription == nil || *req.Subscription < 0 {
		return Deal{}, errors.New("the 'subscription' field must be a non-negative amount")
	}
	closeDate, err := utils.ParseDate(req.Close)
	if err != nil {
		return Deal{}, errors.New("the 'close' field must be a YYYY-MM-DD date")
	}

	cycle := BillingCycle(req.Cycle)
	if cycle == "" {
		// The add-deal form defaults to a six-month cycle.
		cycle = CycleSemiannual
	}
	if cycle.Months() == 0 {
		return Deal{}, errors.New("unknown billing cycle")
	}

	var setup float64
	if req.Setup != nil {
		setup = *req.Setup
	}

	return Deal{
		Name:         name,
		CloseDate:    closeDate,
		Subscription: *req.Subscription,
		Setup:        setup,
		Cycle:        cycle,
	}, nil
}
