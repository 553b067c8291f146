package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// WatchlistRepository is the Postgres implementation of
// ports.WatchlistRepository.
//
// The membership invariants live in the schema: watchlists carry
// UNIQUE (user_id, name), entries carry UNIQUE (watchlist_id, company_id),
// and entries cascade away with their watchlist or company. Add and remove
// are single statements, so a request that dies mid-flight leaves no partial
// state.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepository(pool *pgxpool.Pool) *WatchlistRepository {
	return &WatchlistRepository{pool: pool}
}

func (r *WatchlistRepository) CreateWatchlist(ctx context.Context, userID int64, name string) (*domain.Watchlist, error) {
	query := `
		INSERT INTO watchlists (user_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	wl := domain.Watchlist{UserID: userID, Name: name}
	err := r.pool.QueryRow(ctx, query, userID, name).Scan(&wl.ID, &wl.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrWatchlistNameTaken
		}
		return nil, fmt.Errorf("insert watchlist: %w", err)
	}
	return &wl, nil
}

func (r *WatchlistRepository) FindWatchlist(ctx context.Context, userID, watchlistID int64) (*domain.Watchlist, error) {
	// Scoped by owner: someone else's watchlist is indistinguishable from a
	// missing one.
	query := `
		SELECT id, user_id, name, created_at
		FROM watchlists
		WHERE id = $1 AND user_id = $2
	`

	var wl domain.Watchlist
	err := r.pool.QueryRow(ctx, query, watchlistID, userID).Scan(&wl.ID, &wl.UserID, &wl.Name, &wl.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWatchlistNotFound
		}
		return nil, fmt.Errorf("find watchlist: %w", err)
	}
	return &wl, nil
}

func (r *WatchlistRepository) DeleteWatchlist(ctx context.Context, userID, watchlistID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM watchlists WHERE id = $1 AND user_id = $2`, watchlistID, userID)
	if err != nil {
		return fmt.Errorf("delete watchlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWatchlistNotFound
	}
	return nil
}

func (r *WatchlistRepository) ListWatchlists(ctx context.Context, userID int64, limit, offset int) ([]domain.Watchlist, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM watchlists WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count watchlists: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, created_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list watchlists: %w", err)
	}
	defer rows.Close()

	watchlists := make([]domain.Watchlist, 0, limit)
	for rows.Next() {
		var wl domain.Watchlist
		if err := rows.Scan(&wl.ID, &wl.UserID, &wl.Name, &wl.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan watchlist: %w", err)
		}
		watchlists = append(watchlists, wl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list watchlists: %w", err)
	}

	return watchlists, total, nil
}

// AddEntry inserts the membership edge. ON CONFLICT DO NOTHING makes the
// concurrent-duplicate race benign: the loser of the race observes zero rows
// affected and reports "already present", exactly like a sequential replay.
func (r *WatchlistRepository) AddEntry(ctx context.Context, watchlistID, companyID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO watchlist_entries (watchlist_id, company_id)
		VALUES ($1, $2)
		ON CONFLICT (watchlist_id, company_id) DO NOTHING
	`, watchlistID, companyID)
	if err != nil {
		return false, fmt.Errorf("insert watchlist entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveEntry deletes the membership edge. Zero rows deleted is the
// idempotent "was never there" outcome, not an error.
func (r *WatchlistRepository) RemoveEntry(ctx context.Context, watchlistID, companyID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM watchlist_entries
		WHERE watchlist_id = $1 AND company_id = $2
	`, watchlistID, companyID)
	if err != nil {
		return false, fmt.Errorf("delete watchlist entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WatchlistRepository) ListEntries(ctx context.Context, watchlistID int64, limit, offset int) ([]domain.WatchlistItem, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM watchlist_entries WHERE watchlist_id = $1`, watchlistID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count watchlist entries: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.created_at,
		       c.id, c.company_name, COALESCE(c.symbol, ''), COALESCE(c.scripcode, '')
		FROM watchlist_entries e
		JOIN companies c ON c.id = e.company_id
		WHERE e.watchlist_id = $1
		ORDER BY e.id
		LIMIT $2 OFFSET $3
	`, watchlistID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list watchlist entries: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WatchlistItem, 0, limit)
	for rows.Next() {
		var item domain.WatchlistItem
		if err := rows.Scan(
			&item.ID,
			&item.CreatedAt,
			&item.Company.ID,
			&item.Company.CompanyName,
			&item.Company.Symbol,
			&item.Company.ScripCode,
		); err != nil {
			return nil, 0, fmt.Errorf("scan watchlist entry: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list watchlist entries: %w", err)
	}

	return items, total, nil
}
