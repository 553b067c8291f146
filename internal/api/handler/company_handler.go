package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tradingportal/companies-api/internal/core/ports"
)

// CompanyHandler handles HTTP requests for the company directory.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// List handles GET /companies.
//
// @Summary      Get a list of companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        page          query     int     false  "Page number (1-based)"
// @Param        page_size     query     int     false  "Page size (max 100)"
// @Param        search        query     string  false  "Search by name, symbol or scripcode"
// @Param        ordering      query     string  false  "Order by company_name, symbol or scripcode; prefix with - for descending"
// @Param        symbol        query     string  false  "Exact symbol filter"
// @Param        scripcode     query     string  false  "Exact scripcode filter"
// @Param        company_name  query     string  false  "Exact name filter"
// @Success      200           {object}  pageEnvelope
// @Failure      400           {object}  errorResponse
// @Router       /companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	var q listCompaniesQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	page, pageSize := pageQuery(c)

	result, err := h.service.List(c.Request().Context(), ports.ListCompaniesInput{
		Symbol:      q.Symbol,
		ScripCode:   q.ScripCode,
		CompanyName: q.CompanyName,
		Search:      q.Search,
		Ordering:    q.Ordering,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newPageEnvelope(c, result.Items, len(result.Items), result.TotalCount, result.Page, result.PageSize))
}

// Get handles GET /companies/:id.
//
// @Summary      Get details of a specific company by ID
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  errorResponse
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	company, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, company)
}

// Create handles POST /companies. Superuser only.
//
// @Summary      Create a new company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  domain.Company
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.service.Create(c.Request().Context(), ports.CreateCompanyInput{
		CompanyName: req.CompanyName,
		Symbol:      req.Symbol,
		ScripCode:   req.ScripCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, company)
}

// Update handles PATCH /companies/:id. Superuser only.
//
// @Summary      Update one or more fields of a company by ID
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Company ID"
// @Param        body  body      updateCompanyRequest  true  "Fields to update"
// @Success      200   {object}  domain.Company
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /companies/{id} [patch]
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.Update(c.Request().Context(), id, ports.UpdateCompanyInput{
		CompanyName: req.CompanyName,
		Symbol:      req.Symbol,
		ScripCode:   req.ScripCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, company)
}

// Delete handles DELETE /companies/:id. Superuser only.
//
// @Summary      Delete a company by ID
// @Tags         companies
// @Security     BearerAuth
// @Param        id  path  int  true  "Company ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /companies/{id} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
