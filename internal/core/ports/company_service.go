package ports

import (
	"context"

	"github.com/tradingportal/companies-api/internal/core/domain"
)

// CreateCompanyInput carries the fields for a new company.
type CreateCompanyInput struct {
	CompanyName string
	Symbol      string
	ScripCode   string
}

// UpdateCompanyInput carries a partial update; nil fields are untouched.
type UpdateCompanyInput struct {
	CompanyName *string
	Symbol      *string
	ScripCode   *string
}

// ListCompaniesInput carries the query parameters of the list endpoint.
// Ordering uses the wire syntax: a field name, optionally prefixed with "-"
// for descending (e.g. "-symbol").
type ListCompaniesInput struct {
	Symbol      string
	ScripCode   string
	CompanyName string
	Search      string
	Ordering    string
	Page        int
	PageSize    int
}

// CompanyPage is one page of the company listing plus the paging state the
// transport layer needs to build the response envelope.
type CompanyPage struct {
	Items      []domain.Company
	TotalCount int64
	Page       int
	PageSize   int
}

// CompanyService defines use-case operations for the company directory.
// Write operations assume the caller has already been authorized as a
// superuser; the access-control middleware owns that check.
type CompanyService interface {
	Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error)
	Get(ctx context.Context, id int64) (*domain.Company, error)
	Update(ctx context.Context, id int64, input UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, input ListCompaniesInput) (*CompanyPage, error)
}
