package handler

// --- Request / Response types ---

type createWatchlistRequest struct {
	Name string `json:"name" validate:"required"`
}

// membershipRequest mutates the membership edge between a watchlist and a
// company; both ids are required.
type membershipRequest struct {
	WatchlistID int64 `json:"watchlist_id" validate:"required,gt=0"`
	CompanyID   int64 `json:"company_id"   validate:"required,gt=0"`
}

// messageResponse carries the human-readable outcome of a membership
// mutation ("Added to watchlist", "Already in watchlist", ...).
type messageResponse struct {
	Message string `json:"message"`
}
