package domain

import "time"

// Watchlist is a named collection of companies owned by a single user.
// A user cannot own two watchlists with the same name.
type Watchlist struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WatchlistEntry is the membership edge between a watchlist and a company.
// A company appears at most once per watchlist.
type WatchlistEntry struct {
	ID          int64     `json:"id"`
	WatchlistID int64     `json:"watchlist_id"`
	CompanyID   int64     `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// WatchlistItem is the read-side projection of an entry joined with the
// company it references.
type WatchlistItem struct {
	ID        int64     `json:"id"`
	Company   Company   `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}
