package ports

import (
	"context"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// WatchlistRepository defines persistence for watchlists and their entries.
//
// Uniqueness of (user_id, name) and (watchlist_id, company_id) is enforced by
// storage constraints so concurrent writers cannot race past an application
// level check. AddEntry and RemoveEntry are single atomic statements.
type WatchlistRepository interface {
	// CreateWatchlist returns domain.ErrWatchlistNameTaken when the owner
	// already has a watchlist with that name.
	CreateWatchlist(ctx context.Context, userID int64, name string) (*domain.Watchlist, error)

	// FindWatchlist resolves a watchlist by id scoped to its owner. A
	// watchlist owned by someone else is domain.ErrWatchlistNotFound.
	FindWatchlist(ctx context.Context, userID, watchlistID int64) (*domain.Watchlist, error)

	// DeleteWatchlist removes an owned watchlist; entries go with it via the
	// schema cascade. Returns domain.ErrWatchlistNotFound when no owned row
	// was deleted.
	DeleteWatchlist(ctx context.Context, userID, watchlistID int64) error

	ListWatchlists(ctx context.Context, userID int64, limit, offset int) ([]domain.Watchlist, int64, error)

	// AddEntry inserts the membership edge if absent. created=false means the
	// edge already existed (including losing a race to a concurrent insert).
	AddEntry(ctx context.Context, watchlistID, companyID int64) (created bool, err error)

	// RemoveEntry deletes the membership edge if present. removed=false is
	// not an error; there was simply nothing to remove.
	RemoveEntry(ctx context.Context, watchlistID, companyID int64) (removed bool, err error)

	// ListEntries returns entries joined with their companies, ordered by
	// entry id ascending.
	ListEntries(ctx context.Context, watchlistID int64, limit, offset int) ([]domain.WatchlistItem, int64, error)
}
