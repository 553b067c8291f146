package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tradingportal/companies-api/internal/core/domain"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubCompanyRepo struct {
	byID       map[int64]*domain.Company
	nextID     int64
	lastFilter ports.ListCompaniesFilter // filter passed to the last List call
	failWith   error                     // if set, every method returns this error
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byID: make(map[int64]*domain.Company), nextID: 1}
}

func (r *stubCompanyRepo) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	clone := *c
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id int64) (*domain.Company, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) Update(_ context.Context, id int64, upd ports.CompanyUpdate) (*domain.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	if upd.CompanyName != nil {
		c.CompanyName = *upd.CompanyName
	}
	if upd.Symbol != nil {
		c.Symbol = *upd.Symbol
	}
	if upd.ScripCode != nil {
		c.ScripCode = *upd.ScripCode
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.byID, id)
	return nil
}

// List applies the same filters the real Postgres repo would use.
func (r *stubCompanyRepo) List(_ context.Context, f ports.ListCompaniesFilter) ([]domain.Company, int64, error) {
	if r.failWith != nil {
		return nil, 0, r.failWith
	}
	r.lastFilter = f

	var matched []domain.Company
	for _, c := range r.byID {
		if f.Symbol != "" && c.Symbol != f.Symbol {
			continue
		}
		if f.ScripCode != "" && c.ScripCode != f.ScripCode {
			continue
		}
		if f.CompanyName != "" && c.CompanyName != f.CompanyName {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(c.CompanyName), q) &&
				!strings.Contains(strings.ToLower(c.Symbol), q) &&
				!strings.Contains(strings.ToLower(c.ScripCode), q) {
				continue
			}
		}
		matched = append(matched, *c)
	}

	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].ID < matched[j].ID
		switch f.OrderBy {
		case "company_name":
			less = matched[i].CompanyName < matched[j].CompanyName
		case "symbol":
			less = matched[i].Symbol < matched[j].Symbol
		case "scripcode":
			less = matched[i].ScripCode < matched[j].ScripCode
		}
		if f.Descending {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	if f.Offset > len(matched) {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], total, nil
}

func (r *stubCompanyRepo) ListIDs(_ context.Context) ([]int64, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *stubCompanyRepo) SetScripCode(_ context.Context, id int64, scripCode string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.ScripCode = scripCode
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func seedCompany(t *testing.T, repo *stubCompanyRepo, name, symbol, scrip string) *domain.Company {
	t.Helper()
	c, err := repo.Create(context.Background(), &domain.Company{CompanyName: name, Symbol: symbol, ScripCode: scrip})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Create / Update tests
// ---------------------------------------------------------------------------

func TestCompanyService_Create_Success(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	c, err := svc.Create(context.Background(), ports.CreateCompanyInput{
		CompanyName: "Reliance Industries",
		Symbol:      "RELIANCE",
		ScripCode:   "500325",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == 0 {
		t.Error("expected assigned id")
	}
	if c.CompanyName != "Reliance Industries" {
		t.Errorf("company_name: got %q", c.CompanyName)
	}
}

func TestCompanyService_Create_BlankNameRejected(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	_, err := svc.Create(context.Background(), ports.CreateCompanyInput{CompanyName: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("nothing should be stored on validation failure")
	}
}

func TestCompanyService_Update_PartialFields(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	seeded := seedCompany(t, repo, "Tata Motors", "TATAMOTORS", "500570")

	newSymbol := "TATAMTR"
	updated, err := svc.Update(context.Background(), seeded.ID, ports.UpdateCompanyInput{Symbol: &newSymbol})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Symbol != "TATAMTR" {
		t.Errorf("symbol: got %q", updated.Symbol)
	}
	// Untouched fields keep their values.
	if updated.CompanyName != "Tata Motors" {
		t.Errorf("company_name changed unexpectedly: %q", updated.CompanyName)
	}
	if updated.ScripCode != "500570" {
		t.Errorf("scripcode changed unexpectedly: %q", updated.ScripCode)
	}
}

func TestCompanyService_Update_BlankNameRejected(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	seeded := seedCompany(t, repo, "Tata Motors", "TATAMOTORS", "500570")

	blank := ""
	_, err := svc.Update(context.Background(), seeded.ID, ports.UpdateCompanyInput{CompanyName: &blank})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCompanyService_Update_NotFound(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	name := "Ghost Corp"
	_, err := svc.Update(context.Background(), 404, ports.UpdateCompanyInput{CompanyName: &name})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestCompanyService_Delete_NotFound(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	err := svc.Delete(context.Background(), 404)
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Ordering tests
// ---------------------------------------------------------------------------

func TestCompanyService_List_OrderingAscending(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	seedCompany(t, repo, "Wipro", "WIPRO", "507685")
	seedCompany(t, repo, "Infosys", "INFY", "500209")

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{Ordering: "company_name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Items[0].CompanyName != "Infosys" || page.Items[1].CompanyName != "Wipro" {
		t.Errorf("ascending order wrong: %q, %q", page.Items[0].CompanyName, page.Items[1].CompanyName)
	}
}

func TestCompanyService_List_OrderingDescending(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	seedCompany(t, repo, "Wipro", "WIPRO", "507685")
	seedCompany(t, repo, "Infosys", "INFY", "500209")

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{Ordering: "-symbol"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Items[0].Symbol != "WIPRO" {
		t.Errorf("descending order wrong: first symbol %q", page.Items[0].Symbol)
	}
	if !repo.lastFilter.Descending {
		t.Error("expected Descending=true passed to repo")
	}
}

func TestCompanyService_List_UnknownOrderingRejected(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	for _, ordering := range []string{"id", "-created_at", "symbol; DROP TABLE companies"} {
		_, err := svc.List(context.Background(), ports.ListCompaniesInput{Ordering: ordering})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ordering=%q: expected ErrValidation, got %v", ordering, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Paging tests
// ---------------------------------------------------------------------------

func TestCompanyService_List_DefaultPageSize(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.PageSize != 10 {
		t.Errorf("expected default page size 10, got %d", page.PageSize)
	}
	if page.Page != 1 {
		t.Errorf("expected page 1, got %d", page.Page)
	}
}

func TestCompanyService_List_PageSizeCappedAt100(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{PageSize: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.PageSize != 100 {
		t.Errorf("expected capped page size 100, got %d", page.PageSize)
	}
	if repo.lastFilter.Limit != 100 {
		t.Errorf("expected limit 100 passed to repo, got %d", repo.lastFilter.Limit)
	}
}

func TestCompanyService_List_PaginationMath(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	for i := 0; i < 5; i++ {
		seedCompany(t, repo, "Company", "SYM", "100000")
	}

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 5 {
		t.Errorf("total: expected 5, got %d", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Errorf("items: expected 2, got %d", len(page.Items))
	}
	if repo.lastFilter.Offset != 2 {
		t.Errorf("offset: expected 2, got %d", repo.lastFilter.Offset)
	}
}

// ---------------------------------------------------------------------------
// Filter and search tests
// ---------------------------------------------------------------------------

func TestCompanyService_List_FiltersAreANDed(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	seedCompany(t, repo, "Infosys", "INFY", "500209")
	seedCompany(t, repo, "Infosys BPO", "INFY", "500210")

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{
		Symbol:    "INFY",
		ScripCode: "500209",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 1 {
		t.Errorf("expected 1 match, got %d", page.TotalCount)
	}
}

func TestCompanyService_List_SearchMatchesAnyField(t *testing.T) {
	repo := newStubCompanyRepo()
	svc := NewCompanyService(repo, discardLogger)
	seedCompany(t, repo, "Infosys", "INFY", "500209")
	seedCompany(t, repo, "Wipro", "WIPRO", "507685")

	page, err := svc.List(context.Background(), ports.ListCompaniesInput{Search: "infy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 1 {
		t.Errorf("search by symbol substring: expected 1, got %d", page.TotalCount)
	}
}
