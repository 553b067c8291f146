package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the JWT and injects the authenticated principal into the
// request context: "user_id" (int64), "username" (string) and "is_superuser"
// (bool).
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Numeric claims decode as float64 from JSON.
			userID, ok := claims["user_id"].(float64)
			if !ok || userID <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}
			isSuperuser, _ := claims["is_superuser"].(bool)

			c.Set("user_id", int64(userID))
			c.Set("username", claims["username"])
			c.Set("is_superuser", isSuperuser)

			return next(c)
		}
	}
}
