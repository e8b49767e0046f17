package middleware

import (
	"net/http"
	"strings"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/labstack/echo/v4"
)

const TokenCookieName = "tigertix_token"

// RequireAuth accepts the session cookie set by the auth service, or a
// bearer token for non-browser clients.
func RequireAuth(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(TokenCookieName); err == nil {
				token = cookie.Value
			} else if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := auth.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_email", claims.Subject)
			return next(c)
		}
	}
}
