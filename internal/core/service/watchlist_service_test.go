package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tradingportal/companies-api/internal/core/domain"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type membershipKey struct {
	watchlistID int64
	companyID   int64
}

type stubWatchlistRepo struct {
	byID     map[int64]*domain.Watchlist
	entries  map[membershipKey]time.Time
	nextID   int64
	failWith error
}

func newStubWatchlistRepo() *stubWatchlistRepo {
	return &stubWatchlistRepo{
		byID:    make(map[int64]*domain.Watchlist),
		entries: make(map[membershipKey]time.Time),
		nextID:  1,
	}
}

func (r *stubWatchlistRepo) CreateWatchlist(_ context.Context, userID int64, name string) (*domain.Watchlist, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	// Mirror the UNIQUE(user_id, name) constraint.
	for _, wl := range r.byID {
		if wl.UserID == userID && wl.Name == name {
			return nil, domain.ErrWatchlistNameTaken
		}
	}
	wl := &domain.Watchlist{ID: r.nextID, UserID: userID, Name: name, CreatedAt: time.Now().UTC()}
	r.nextID++
	r.byID[wl.ID] = wl
	clone := *wl
	return &clone, nil
}

func (r *stubWatchlistRepo) FindWatchlist(_ context.Context, userID, watchlistID int64) (*domain.Watchlist, error) {
	wl, ok := r.byID[watchlistID]
	if !ok || wl.UserID != userID {
		return nil, domain.ErrWatchlistNotFound
	}
	clone := *wl
	return &clone, nil
}

func (r *stubWatchlistRepo) DeleteWatchlist(_ context.Context, userID, watchlistID int64) error {
	wl, ok := r.byID[watchlistID]
	if !ok || wl.UserID != userID {
		return domain.ErrWatchlistNotFound
	}
	delete(r.byID, watchlistID)
	// schema cascade
	for k := range r.entries {
		if k.watchlistID == watchlistID {
			delete(r.entries, k)
		}
	}
	return nil
}

func (r *stubWatchlistRepo) ListWatchlists(_ context.Context, userID int64, limit, offset int) ([]domain.Watchlist, int64, error) {
	var matched []domain.Watchlist
	for _, wl := range r.byID {
		if wl.UserID == userID {
			matched = append(matched, *wl)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *stubWatchlistRepo) AddEntry(_ context.Context, watchlistID, companyID int64) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	k := membershipKey{watchlistID, companyID}
	if _, ok := r.entries[k]; ok {
		return false, nil
	}
	r.entries[k] = time.Now().UTC()
	return true, nil
}

func (r *stubWatchlistRepo) RemoveEntry(_ context.Context, watchlistID, companyID int64) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	k := membershipKey{watchlistID, companyID}
	if _, ok := r.entries[k]; !ok {
		return false, nil
	}
	delete(r.entries, k)
	return true, nil
}

func (r *stubWatchlistRepo) ListEntries(_ context.Context, watchlistID int64, limit, offset int) ([]domain.WatchlistItem, int64, error) {
	var items []domain.WatchlistItem
	for k, at := range r.entries {
		if k.watchlistID == watchlistID {
			items = append(items, domain.WatchlistItem{
				ID:        k.companyID,
				Company:   domain.Company{ID: k.companyID},
				CreatedAt: at,
			})
		}
	}
	total := int64(len(items))
	if offset > len(items) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newWatchlistFixture(t *testing.T) (*stubWatchlistRepo, *stubCompanyRepo, *WatchlistService) {
	t.Helper()
	watchlists := newStubWatchlistRepo()
	companies := newStubCompanyRepo()
	svc := NewWatchlistService(watchlists, companies, discardLogger)
	return watchlists, companies, svc
}

// ---------------------------------------------------------------------------
// Watchlist lifecycle tests
// ---------------------------------------------------------------------------

func TestWatchlistService_Create_Success(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)

	wl, err := svc.CreateWatchlist(context.Background(), 7, "Tech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wl.UserID != 7 {
		t.Errorf("user_id: got %d", wl.UserID)
	}
	if wl.Name != "Tech" {
		t.Errorf("name: got %q", wl.Name)
	}
}

func TestWatchlistService_Create_BlankNameRejected(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)

	_, err := svc.CreateWatchlist(context.Background(), 7, "  ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestWatchlistService_Create_DuplicateNameSameUser(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)

	if _, err := svc.CreateWatchlist(context.Background(), 7, "Tech"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateWatchlist(context.Background(), 7, "Tech")
	if !errors.Is(err, domain.ErrWatchlistNameTaken) {
		t.Errorf("expected ErrWatchlistNameTaken, got %v", err)
	}
}

func TestWatchlistService_Create_SameNameDifferentUsers(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)

	if _, err := svc.CreateWatchlist(context.Background(), 7, "Tech"); err != nil {
		t.Fatalf("user 7: %v", err)
	}
	if _, err := svc.CreateWatchlist(context.Background(), 8, "Tech"); err != nil {
		t.Errorf("same name for another user must be allowed, got %v", err)
	}
}

func TestWatchlistService_Delete_CascadesEntries(t *testing.T) {
	watchlists, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c := seedCompany(t, companies, "Infosys", "INFY", "500209")
	if _, err := svc.AddEntry(context.Background(), ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: c.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteWatchlist(context.Background(), 7, wl.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(watchlists.entries) != 0 {
		t.Errorf("expected entries removed with the watchlist, %d remain", len(watchlists.entries))
	}
}

func TestWatchlistService_Delete_ForeignWatchlistNotFound(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")

	err := svc.DeleteWatchlist(context.Background(), 99, wl.ID)
	if !errors.Is(err, domain.ErrWatchlistNotFound) {
		t.Errorf("foreign owner must read as not found, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Idempotent membership tests
// ---------------------------------------------------------------------------

func TestWatchlistService_AddEntry_FirstAddChanges(t *testing.T) {
	_, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c := seedCompany(t, companies, "Infosys", "INFY", "500209")

	res, err := svc.AddEntry(context.Background(), ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: c.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Error("first add must report Changed=true")
	}
}

func TestWatchlistService_AddEntry_RepeatIsIdempotent(t *testing.T) {
	watchlists, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c := seedCompany(t, companies, "Infosys", "INFY", "500209")
	in := ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: c.ID}

	if _, err := svc.AddEntry(context.Background(), in); err != nil {
		t.Fatalf("first add: %v", err)
	}
	res, err := svc.AddEntry(context.Background(), in)
	if err != nil {
		t.Fatalf("repeat add must succeed, got %v", err)
	}
	if res.Changed {
		t.Error("repeat add must report Changed=false")
	}
	if len(watchlists.entries) != 1 {
		t.Errorf("expected exactly 1 membership row, got %d", len(watchlists.entries))
	}
}

func TestWatchlistService_RemoveEntry_PresentThenAbsent(t *testing.T) {
	_, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c := seedCompany(t, companies, "Infosys", "INFY", "500209")
	in := ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: c.ID}

	if _, err := svc.AddEntry(context.Background(), in); err != nil {
		t.Fatalf("add: %v", err)
	}

	first, err := svc.RemoveEntry(context.Background(), in)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !first.Changed {
		t.Error("removing a present membership must report Changed=true")
	}

	second, err := svc.RemoveEntry(context.Background(), in)
	if err != nil {
		t.Fatalf("repeat remove must succeed, got %v", err)
	}
	if second.Changed {
		t.Error("removing an absent membership must report Changed=false")
	}
}

func TestWatchlistService_RemoveEntry_NeverAddedIsSuccess(t *testing.T) {
	_, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c := seedCompany(t, companies, "Infosys", "INFY", "500209")

	res, err := svc.RemoveEntry(context.Background(), ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: c.ID})
	if err != nil {
		t.Fatalf("remove of never-added company must not error, got %v", err)
	}
	if res.Changed {
		t.Error("expected Changed=false")
	}
}

// ---------------------------------------------------------------------------
// Reference verification tests
// ---------------------------------------------------------------------------

func TestWatchlistService_AddEntry_ForeignWatchlistNotFound(t *testing.T) {
	_, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c := seedCompany(t, companies, "Infosys", "INFY", "500209")

	_, err := svc.AddEntry(context.Background(), ports.MembershipInput{UserID: 99, WatchlistID: wl.ID, CompanyID: c.ID})
	if !errors.Is(err, domain.ErrWatchlistNotFound) {
		t.Errorf("foreign watchlist must read as not found, got %v", err)
	}
}

func TestWatchlistService_AddEntry_MissingCompany(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")

	_, err := svc.AddEntry(context.Background(), ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: 404})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestWatchlistService_RemoveEntry_MissingCompany(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")

	// Remove checks references the same way add does: a company that does
	// not exist is a 404, not an idempotent no-op.
	_, err := svc.RemoveEntry(context.Background(), ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: 404})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing tests
// ---------------------------------------------------------------------------

func TestWatchlistService_ListWatchlists_ScopedToOwner(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)
	if _, err := svc.CreateWatchlist(context.Background(), 7, "Tech"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateWatchlist(context.Background(), 8, "Energy"); err != nil {
		t.Fatal(err)
	}

	page, err := svc.ListWatchlists(context.Background(), ports.ListWatchlistsInput{UserID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 1 {
		t.Errorf("expected 1 watchlist for user 7, got %d", page.TotalCount)
	}
}

func TestWatchlistService_ListEntries_ForeignWatchlistNotFound(t *testing.T) {
	_, _, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")

	_, err := svc.ListEntries(context.Background(), ports.ListEntriesInput{UserID: 99, WatchlistID: wl.ID})
	if !errors.Is(err, domain.ErrWatchlistNotFound) {
		t.Errorf("expected ErrWatchlistNotFound, got %v", err)
	}
}

func TestWatchlistService_ListEntries_ReturnsMemberships(t *testing.T) {
	_, companies, svc := newWatchlistFixture(t)
	wl, _ := svc.CreateWatchlist(context.Background(), 7, "Tech")
	c1 := seedCompany(t, companies, "Infosys", "INFY", "500209")
	c2 := seedCompany(t, companies, "Wipro", "WIPRO", "507685")
	for _, c := range []*domain.Company{c1, c2} {
		if _, err := svc.AddEntry(context.Background(), ports.MembershipInput{UserID: 7, WatchlistID: wl.ID, CompanyID: c.ID}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	page, err := svc.ListEntries(context.Background(), ports.ListEntriesInput{UserID: 7, WatchlistID: wl.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("expected 2 entries, got %d", page.TotalCount)
	}
}
