package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tradingportal/companies-api/internal/api/metrics"
	"github.com/tradingportal/companies-api/internal/core/domain"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

// WatchlistService enforces ownership and the idempotent add/remove contract
// for watchlist membership.
type WatchlistService struct {
	watchlists ports.WatchlistRepository
	companies  ports.CompanyRepository
	logger     zerolog.Logger
}

func NewWatchlistService(watchlists ports.WatchlistRepository, companies ports.CompanyRepository, logger zerolog.Logger) *WatchlistService {
	return &WatchlistService{watchlists: watchlists, companies: companies, logger: logger}
}

func (s *WatchlistService) CreateWatchlist(ctx context.Context, userID int64, name string) (*domain.Watchlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	wl, err := s.watchlists.CreateWatchlist(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Int64("watchlist_id", wl.ID).Str("name", name).Msg("watchlist created")
	return wl, nil
}

func (s *WatchlistService) DeleteWatchlist(ctx context.Context, userID, watchlistID int64) error {
	if err := s.watchlists.DeleteWatchlist(ctx, userID, watchlistID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Int64("watchlist_id", watchlistID).Msg("watchlist deleted")
	return nil
}

func (s *WatchlistService) ListWatchlists(ctx context.Context, input ports.ListWatchlistsInput) (*ports.WatchlistPage, error) {
	page, pageSize := clampPaging(input.Page, input.PageSize)

	items, total, err := s.watchlists.ListWatchlists(ctx, input.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &ports.WatchlistPage{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

func (s *WatchlistService) ListEntries(ctx context.Context, input ports.ListEntriesInput) (*ports.EntryPage, error) {
	// Ownership first: foreign or missing watchlists read as not found.
	if _, err := s.watchlists.FindWatchlist(ctx, input.UserID, input.WatchlistID); err != nil {
		return nil, err
	}

	page, pageSize := clampPaging(input.Page, input.PageSize)

	items, total, err := s.watchlists.ListEntries(ctx, input.WatchlistID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &ports.EntryPage{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// AddEntry is an idempotent set insert: adding a company that is already on
// the watchlist reports Changed=false and is a success. Only the referenced
// watchlist (owned) and company must exist.
func (s *WatchlistService) AddEntry(ctx context.Context, input ports.MembershipInput) (*ports.MembershipResult, error) {
	if err := s.verifyReferences(ctx, input); err != nil {
		return nil, err
	}

	created, err := s.watchlists.AddEntry(ctx, input.WatchlistID, input.CompanyID)
	if err != nil {
		return nil, err
	}

	if created {
		metrics.WatchlistAddsTotal.WithLabelValues("created").Inc()
		s.logger.Info().
			Int64("watchlist_id", input.WatchlistID).
			Int64("company_id", input.CompanyID).
			Msg("company added to watchlist")
	} else {
		metrics.WatchlistAddsTotal.WithLabelValues("already_present").Inc()
	}

	return &ports.MembershipResult{Changed: created}, nil
}

// RemoveEntry is the idempotent counterpart: removing an absent membership
// reports Changed=false, never an error.
func (s *WatchlistService) RemoveEntry(ctx context.Context, input ports.MembershipInput) (*ports.MembershipResult, error) {
	if err := s.verifyReferences(ctx, input); err != nil {
		return nil, err
	}

	removed, err := s.watchlists.RemoveEntry(ctx, input.WatchlistID, input.CompanyID)
	if err != nil {
		return nil, err
	}

	if removed {
		metrics.WatchlistRemovesTotal.WithLabelValues("removed").Inc()
		s.logger.Info().
			Int64("watchlist_id", input.WatchlistID).
			Int64("company_id", input.CompanyID).
			Msg("company removed from watchlist")
	} else {
		metrics.WatchlistRemovesTotal.WithLabelValues("absent").Inc()
	}

	return &ports.MembershipResult{Changed: removed}, nil
}

// verifyReferences checks the watchlist (scoped to the caller) and the
// company on every mutation. Ownership is never cached between calls.
func (s *WatchlistService) verifyReferences(ctx context.Context, input ports.MembershipInput) error {
	if _, err := s.watchlists.FindWatchlist(ctx, input.UserID, input.WatchlistID); err != nil {
		return err
	}
	if _, err := s.companies.FindByID(ctx, input.CompanyID); err != nil {
		return err
	}
	return nil
}
