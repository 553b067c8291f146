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

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// orderableFields is the whitelist for the ordering query parameter.
var orderableFields = map[string]struct{}{
	"company_name": {},
	"symbol":       {},
	"scripcode":    {},
}

// CompanyService implements the company directory use cases.
type CompanyService struct {
	repo   ports.CompanyRepository
	logger zerolog.Logger
}

func NewCompanyService(repo ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger}
}

func (s *CompanyService) Create(ctx context.Context, input ports.CreateCompanyInput) (*domain.Company, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company_name is required", domain.ErrValidation)
	}

	company, err := s.repo.Create(ctx, &domain.Company{
		CompanyName: input.CompanyName,
		Symbol:      input.Symbol,
		ScripCode:   input.ScripCode,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create company")
		return nil, err
	}

	metrics.CompaniesCreatedTotal.Inc()
	s.logger.Info().Int64("company_id", company.ID).Str("symbol", company.Symbol).Msg("company created")
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CompanyService) Update(ctx context.Context, id int64, input ports.UpdateCompanyInput) (*domain.Company, error) {
	if input.CompanyName != nil && strings.TrimSpace(*input.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company_name cannot be blank", domain.ErrValidation)
	}

	company, err := s.repo.Update(ctx, id, ports.CompanyUpdate{
		CompanyName: input.CompanyName,
		Symbol:      input.Symbol,
		ScripCode:   input.ScripCode,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("company_id", id).Msg("company updated")
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// watchlist entries referencing the company are gone too (schema cascade)
	s.logger.Info().Int64("company_id", id).Msg("company deleted")
	return nil
}

func (s *CompanyService) List(ctx context.Context, input ports.ListCompaniesInput) (*ports.CompanyPage, error) {
	orderBy, descending, err := parseOrdering(input.Ordering)
	if err != nil {
		return nil, err
	}

	page, pageSize := clampPaging(input.Page, input.PageSize)

	items, total, err := s.repo.List(ctx, ports.ListCompaniesFilter{
		Symbol:      input.Symbol,
		ScripCode:   input.ScripCode,
		CompanyName: input.CompanyName,
		Search:      input.Search,
		OrderBy:     orderBy,
		Descending:  descending,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.CompanyPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// parseOrdering validates the wire-format ordering value ("field" or
// "-field") against the whitelist.
func parseOrdering(ordering string) (field string, descending bool, err error) {
	if ordering == "" {
		return "", false, nil
	}
	field = ordering
	if strings.HasPrefix(ordering, "-") {
		field = ordering[1:]
		descending = true
	}
	if _, ok := orderableFields[field]; !ok {
		return "", false, fmt.Errorf("%w: ordering must be one of company_name, symbol, scripcode", domain.ErrValidation)
	}
	return field, descending, nil
}

// clampPaging applies the default page size and the hard cap.
func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
