// Package sheets talks to the spreadsheet-backed deal source: a Google Apps
// Script endpoint returning the full deal list as JSON. Every failure is
// recoverable; the service falls back to the locally cached list.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rejigai/commission-tracker/internal/deal"
	"github.com/rejigai/commission-tracker/internal/utils"
	"github.com/rs/zerolog"
)

// Client fetches the deal list from the Apps Script URL.
type Client struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func NewClient(url string, log zerolog.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log.With().Str("client", "sheets").Logger(),
	}
}

// dealRecord is one row of the sheet payload.
type dealRecord struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Close        string  `json:"close"`
	Subscription float64 `json:"subscription"`
	Setup        float64 `json:"setup"`
	Cycle        string  `json:"cycle"`
	ChurnDate    *string `json:"churnDate"`
}

type fetchResponse struct {
	Success   bool         `json:"success"`
	Data      []dealRecord `json:"data"`
	Timestamp string       `json:"timestamp"`
	Error     string       `json:"error"`
}

func (rec dealRecord) toDeal() (deal.Deal, error) {
	closeDate, err := utils.ParseDate(rec.Close)
	if err != nil {
		return deal.Deal{}, fmt.Errorf("invalid close date %q: %w", rec.Close, err)
	}

	cycle := deal.BillingCycle(rec.Cycle)
	if cycle.Months() == 0 {
		return deal.Deal{}, fmt.Errorf("unknown billing cycle %q", rec.Cycle)
	}

	var churn *time.Time
	if rec.ChurnDate != nil && *rec.ChurnDate != "" {
		t, err := utils.ParseDate(*rec.ChurnDate)
		if err != nil {
			return deal.Deal{}, fmt.Errorf("invalid churn date %q: %w", *rec.ChurnDate, err)
		}
		churn = &t
	}

	return deal.Deal{
		ID:           rec.ID,
		Name:         rec.Name,
		CloseDate:    closeDate,
		Subscription: rec.Subscription,
		Setup:        rec.Setup,
		Cycle:        cycle,
		ChurnDate:    churn,
	}, nil
}

// FetchDeals retrieves the full deal list and the sheet's own sync timestamp.
// Transport, status, payload and record-level failures all come back as
// errors; the caller decides whether to fall back to the cached list.
func (c *Client) FetchDeals(ctx context.Context) ([]deal.Deal, time.Time, error) {
	if c.url == "" {
		return nil, time.Time{}, errors.New("sheet URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("building sheet request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("sheet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, fmt.Errorf("sheet returned status %d", resp.StatusCode)
	}

	var result fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse sheet response: %w", err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "sheet reported failure"
		}
		return nil, time.Time{}, errors.New(msg)
	}

	deals := make([]deal.Deal, 0, len(result.Data))
	for _, rec := range result.Data {
		d, err := rec.toDeal()
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("row %d (%s): %w", rec.ID, rec.Name, err)
		}
		deals = append(deals, d)
	}

	syncedAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, result.Timestamp); err == nil {
		syncedAt = ts
	}

	c.log.Info().Int("deals", len(deals)).Msg("Fetched deals from sheet")
	return deals, syncedAt, nil
}
