package jwks

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// GetBearerToken extracts a bearer token from the request Authorization header
func GetBearerToken(r *http.Request) (string, error) {
	authHeaderParts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(authHeaderParts) != 2 || strings.ToLower(authHeaderParts[0]) != "bearer" {
		return "", errors.New("Authorization header format must be Bearer {token}")
	}
	return authHeaderParts[1], nil
}

// ValidateScope reports whether the token carries a specific scope. The
// token's signature is not checked; validate it first.
func ValidateScope(scope string, tokenString string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	raw, _ := claims["scope"].(string)
	for _, s := range strings.Fields(raw) {
		if s == scope {
			return true
		}
	}
	return false
}

// RequestHasScope reports whether the request's bearer token carries a
// specific scope.
func RequestHasScope(scope string, r *http.Request) bool {
	token, err := GetBearerToken(r)
	if err != nil {
		return false
	}
	return ValidateScope(scope, token)
}
