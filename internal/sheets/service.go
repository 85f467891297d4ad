package sheets

import (
	"context"
	"sync"
	"time"

	"github.com/rejigai/commission-tracker/internal/deal"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Status is the sync banner state: when the list was last synced, whether the
// last attempt failed, and whether a sync is currently in flight.
type Status struct {
	LastSync  *time.Time `json:"lastSync"`
	LastError string     `json:"lastError,omitempty"`
	DealCount int        `json:"dealCount"`
	Syncing   bool       `json:"syncing"`
}

// Service keeps the stored deal list in step with the sheet. The stored list
// is also the fallback cache: when a sync fails it simply stays in place.
type Service struct {
	DB     *gorm.DB
	Client *Client
	Deals  deal.Repository
	log    zerolog.Logger

	mu     sync.Mutex
	status Status
}

func NewService(db *gorm.DB, client *Client, deals deal.Repository, log zerolog.Logger) *Service {
	return &Service{
		DB:     db,
		Client: client,
		Deals:  deals,
		log:    log.With().Str("service", "sheet-sync").Logger(),
	}
}

// Sync fetches the sheet and replaces the stored deal list on success. Every
// failure is non-fatal: the cached list keeps serving and the error surfaces
// only through Status. Concurrent calls coalesce into one.
func (s *Service) Sync(ctx context.Context) error {
	s.mu.Lock()
	if s.status.Syncing {
		s.mu.Unlock()
		return nil
	}
	s.status.Syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.status.Syncing = false
		s.mu.Unlock()
	}()

	deals, syncedAt, err := s.Client.FetchDeals(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Sheet sync failed, keeping cached deals")
		s.recordError(err)
		return err
	}

	if err := s.Deals.ReplaceAll(s.DB, deals); err != nil {
		s.log.Error().Err(err).Msg("Failed to store synced deals")
		s.recordError(err)
		return err
	}

	s.mu.Lock()
	s.status.LastSync = &syncedAt
	s.status.LastError = ""
	s.status.DealCount = len(deals)
	s.mu.Unlock()

	s.log.Info().Int("deals", len(deals)).Time("syncedAt", syncedAt).Msg("Deal list replaced from sheet")
	return nil
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.status.LastError = err.Error()
	s.mu.Unlock()
}

// Status returns a copy of the current sync state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
