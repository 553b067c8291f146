package ports

import (
	"context"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// ListCompaniesFilter carries all query parameters for listing companies.
// Equality filters and the free-text search are combined with AND; the
// search itself matches any of the three text fields (OR, case-insensitive
// substring).
type ListCompaniesFilter struct {
	Symbol      string // optional: exact match
	ScripCode   string // optional: exact match
	CompanyName string // optional: exact match
	Search      string // optional: substring across company_name, symbol, scripcode
	OrderBy     string // company_name, symbol or scripcode; empty = id
	Descending  bool
	Limit       int
	Offset      int
}

// CompanyUpdate holds the fields of a partial update. Nil means "leave as is".
type CompanyUpdate struct {
	CompanyName *string
	Symbol      *string
	ScripCode   *string
}

// CompanyRepository defines persistence operations for companies.
// Deleting a company cascades to every watchlist entry referencing it; the
// cascade is owned by the storage schema, not application code.
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	Update(ctx context.Context, id int64, upd CompanyUpdate) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
	// List returns a page of companies matching filter and the total count.
	List(ctx context.Context, filter ListCompaniesFilter) ([]domain.Company, int64, error)

	// ListIDs and SetScripCode support the scrip-code rewrite job.
	ListIDs(ctx context.Context) ([]int64, error)
	SetScripCode(ctx context.Context, id int64, scripCode string) error
}
