package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Superuser gates mutating company routes: the authenticated principal must
// carry the superuser flag. The endpoint itself is not hidden from regular
// users, so the refusal is 403, never 404.
func Superuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isSuperuser, _ := c.Get("is_superuser").(bool)
			if !isSuperuser {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
