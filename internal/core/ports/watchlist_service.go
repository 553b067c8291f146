package ports

import (
	"context"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// MembershipInput identifies a membership mutation: the acting user, the
// targeted watchlist and the company being added or removed.
type MembershipInput struct {
	UserID      int64
	WatchlistID int64
	CompanyID   int64
}

// MembershipResult reports what a mutation actually did. Add and remove are
// idempotent set operations, so "nothing changed" is a success the caller can
// distinguish, not an error.
type MembershipResult struct {
	// Changed is true when a row was inserted (add) or deleted (remove).
	Changed bool
}

// ListWatchlistsInput pages through the caller's watchlists.
type ListWatchlistsInput struct {
	UserID   int64
	Page     int
	PageSize int
}

// WatchlistPage is one page of the caller's watchlists.
type WatchlistPage struct {
	Items      []domain.Watchlist
	TotalCount int64
	Page       int
	PageSize   int
}

// ListEntriesInput pages through the entries of one owned watchlist.
type ListEntriesInput struct {
	UserID      int64
	WatchlistID int64
	Page        int
	PageSize    int
}

// EntryPage is one page of watchlist items.
type EntryPage struct {
	Items      []domain.WatchlistItem
	TotalCount int64
	Page       int
	PageSize   int
}

// WatchlistService owns collection lifecycle and the add/remove membership
// contract. Every operation re-verifies ownership of the targeted watchlist;
// ids are guessable integers, so a stale or foreign id must come back as
// not-found rather than leak existence.
type WatchlistService interface {
	CreateWatchlist(ctx context.Context, userID int64, name string) (*domain.Watchlist, error)
	DeleteWatchlist(ctx context.Context, userID, watchlistID int64) error
	ListWatchlists(ctx context.Context, input ListWatchlistsInput) (*WatchlistPage, error)
	ListEntries(ctx context.Context, input ListEntriesInput) (*EntryPage, error)
	AddEntry(ctx context.Context, input MembershipInput) (*MembershipResult, error)
	RemoveEntry(ctx context.Context, input MembershipInput) (*MembershipResult, error)
}
