package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradingportal/companies-api/internal/core/ports"
)

// Membership outcome messages. The add/remove endpoints are idempotent, so
// the message (and status for add) is how callers see what actually changed.
const (
	msgAdded          = "Added to watchlist"
	msgAlreadyPresent = "Already in watchlist"
	msgRemoved        = "Removed from watchlist"
	msgAlreadyRemoved = "Already removed from watchlist or was never added"
)

// WatchlistHandler handles HTTP requests for watchlists and their entries.
type WatchlistHandler struct {
	service ports.WatchlistService
}

func NewWatchlistHandler(service ports.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// List handles GET /watchlists, the caller's own watchlists.
//
// @Summary      Get the user's watchlists
// @Tags         watchlists
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number (1-based)"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200        {object}  pageEnvelope
// @Router       /watchlists [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	page, pageSize := pageQuery(c)

	result, err := h.service.ListWatchlists(c.Request().Context(), ports.ListWatchlistsInput{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newPageEnvelope(c, result.Items, len(result.Items), result.TotalCount, result.Page, result.PageSize))
}

// Create handles POST /watchlists.
//
// @Summary      Create a new watchlist
// @Tags         watchlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWatchlistRequest  true  "Watchlist name"
// @Success      201   {object}  domain.Watchlist
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /watchlists [post]
func (h *WatchlistHandler) Create(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wl, err := h.service.CreateWatchlist(c.Request().Context(), userID, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, wl)
}

// Delete handles DELETE /watchlists/:id. Entries cascade with the watchlist.
//
// @Summary      Delete a watchlist by ID
// @Tags         watchlists
// @Security     BearerAuth
// @Param        id  path  int  true  "Watchlist ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /watchlists/{id} [delete]
func (h *WatchlistHandler) Delete(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteWatchlist(c.Request().Context(), userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListItems handles GET /watchlists/:id/items.
//
// @Summary      Get the companies in a watchlist
// @Tags         watchlists
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      int  true   "Watchlist ID"
// @Param        page       query     int  false  "Page number (1-based)"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200        {object}  pageEnvelope
// @Failure      404        {object}  errorResponse
// @Router       /watchlists/{id}/items [get]
func (h *WatchlistHandler) ListItems(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}
	page, pageSize := pageQuery(c)

	result, err := h.service.ListEntries(c.Request().Context(), ports.ListEntriesInput{
		UserID:      userID,
		WatchlistID: id,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newPageEnvelope(c, result.Items, len(result.Items), result.TotalCount, result.Page, result.PageSize))
}

// AddItem handles POST /watchlists/items/add.
//
// Adding is an idempotent set insert: 201 when the company was added, 200
// when it was already on the watchlist.
//
// @Summary      Add a company to a watchlist
// @Tags         watchlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      membershipRequest  true  "Watchlist and company ids"
// @Success      201   {object}  messageResponse  "Added to watchlist"
// @Success      200   {object}  messageResponse  "Already in watchlist"
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /watchlists/items/add [post]
func (h *WatchlistHandler) AddItem(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req membershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.AddEntry(c.Request().Context(), ports.MembershipInput{
		UserID:      userID,
		WatchlistID: req.WatchlistID,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		return err
	}

	if result.Changed {
		return c.JSON(http.StatusCreated, messageResponse{Message: msgAdded})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgAlreadyPresent})
}

// RemoveItem handles POST /watchlists/items/remove.
//
// Removing is idempotent too: both outcomes are 200, the message tells them
// apart.
//
// @Summary      Remove a company from a watchlist
// @Tags         watchlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      membershipRequest  true  "Watchlist and company ids"
// @Success      200   {object}  messageResponse  "Removed, or was never present"
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /watchlists/items/remove [post]
func (h *WatchlistHandler) RemoveItem(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req membershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.RemoveEntry(c.Request().Context(), ports.MembershipInput{
		UserID:      userID,
		WatchlistID: req.WatchlistID,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		return err
	}

	if result.Changed {
		return c.JSON(http.StatusOK, messageResponse{Message: msgRemoved})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgAlreadyRemoved})
}
