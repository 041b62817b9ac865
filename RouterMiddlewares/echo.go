package routermiddlewares

import (
	"github.com/labstack/echo/v4"
	jwks "github.com/tyler-technologies/go-jwks"
)

// Echo middleware for adding bearer token validation into the request
// pipeline. The validator is shared across requests.
func Echo(v *jwks.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := v.ValidateBearerToken(c.Request())
			if err != nil {
				return echo.ErrUnauthorized
			}
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
