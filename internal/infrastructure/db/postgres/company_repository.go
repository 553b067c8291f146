package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradingportal/companies-api/internal/core/domain"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

// CompanyRepository is the Postgres implementation of ports.CompanyRepository.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// orderColumns maps wire-format ordering fields to real columns. The service
// validates the field, this map is the final word on what reaches the SQL.
var orderColumns = map[string]string{
	"company_name": "company_name",
	"symbol":       "symbol",
	"scripcode":    "scripcode",
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	// Blank optional codes are stored as NULL, matching the import data.
	query := `
		INSERT INTO companies (company_name, symbol, scripcode)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		RETURNING id
	`

	created := *c
	err := r.pool.QueryRow(ctx, query, c.CompanyName, c.Symbol, c.ScripCode).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return &created, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `
		SELECT id, company_name, COALESCE(symbol, ''), COALESCE(scripcode, '')
		FROM companies
		WHERE id = $1
	`

	var c domain.Company
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.CompanyName, &c.Symbol, &c.ScripCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id int64, upd ports.CompanyUpdate) (*domain.Company, error) {
	sets := make([]string, 0, 3)
	args := []any{id}

	if upd.CompanyName != nil {
		args = append(args, *upd.CompanyName)
		sets = append(sets, fmt.Sprintf("company_name = $%d", len(args)))
	}
	if upd.Symbol != nil {
		args = append(args, *upd.Symbol)
		sets = append(sets, fmt.Sprintf("symbol = NULLIF($%d, '')", len(args)))
	}
	if upd.ScripCode != nil {
		args = append(args, *upd.ScripCode)
		sets = append(sets, fmt.Sprintf("scripcode = NULLIF($%d, '')", len(args)))
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE id = $1
		RETURNING id, company_name, COALESCE(symbol, ''), COALESCE(scripcode, '')
	`, strings.Join(sets, ", "))

	var c domain.Company
	err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CompanyName, &c.Symbol, &c.ScripCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) List(ctx context.Context, filter ports.ListCompaniesFilter) ([]domain.Company, int64, error) {
	where, args := buildCompanyWhere(filter)

	countQuery := "SELECT COUNT(*) FROM companies" + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	order := "id"
	if col, ok := orderColumns[filter.OrderBy]; ok {
		order = col
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	args = append(args, filter.Limit)
	limitArg := len(args)
	args = append(args, filter.Offset)
	offsetArg := len(args)

	query := fmt.Sprintf(`
		SELECT id, company_name, COALESCE(symbol, ''), COALESCE(scripcode, '')
		FROM companies%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, where, order, direction, limitArg, offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0, filter.Limit)
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.Symbol, &c.ScripCode); err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}

	return companies, total, nil
}

// buildCompanyWhere assembles the WHERE clause shared by the count and page
// queries. Equality filters AND-combine; the free-text search ORs a
// case-insensitive substring match across the three text fields.
func buildCompanyWhere(filter ports.ListCompaniesFilter) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.Symbol != "" {
		args = append(args, filter.Symbol)
		conds = append(conds, fmt.Sprintf("symbol = $%d", len(args)))
	}
	if filter.ScripCode != "" {
		args = append(args, filter.ScripCode)
		conds = append(conds, fmt.Sprintf("scripcode = $%d", len(args)))
	}
	if filter.CompanyName != "" {
		args = append(args, filter.CompanyName)
		conds = append(conds, fmt.Sprintf("company_name = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(company_name ILIKE $%d OR symbol ILIKE $%d OR scripcode ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *CompanyRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list company ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CompanyRepository) SetScripCode(ctx context.Context, id int64, scripCode string) error {
	_, err := r.pool.Exec(ctx, `UPDATE companies SET scripcode = $2 WHERE id = $1`, id, scripCode)
	if err != nil {
		return fmt.Errorf("set scripcode: %w", err)
	}
	return nil
}
