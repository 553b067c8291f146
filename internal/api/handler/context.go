package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: a zero user id means
// the middleware did not run (or the token carried no identity), so the
// request is rejected rather than passed down with an empty principal.
func ctxPrincipal(c echo.Context) (userID int64, isSuperuser bool, err error) {
	userID, _ = c.Get("user_id").(int64)
	if userID == 0 {
		return 0, false, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	isSuperuser, _ = c.Get("is_superuser").(bool)
	return userID, isSuperuser, nil
}
