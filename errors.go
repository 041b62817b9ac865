package jwks

import (
	"errors"
	"fmt"
)

// Error taxonomy for token validation and fetching. The specific errors wrap
// ErrAuth, so callers that do not care which step failed can just check
// errors.Is(err, jwks.ErrAuth). ErrInvalidHeader and ErrInvalidClaims
// additionally wrap ErrInvalidToken.
var (
	// ErrAuth is the base category for every validation and fetch failure.
	ErrAuth = errors.New("auth error")

	// ErrKeyIDNotFound is returned when the token's kid is not present in
	// the key cache, even after a forced refresh of the key set.
	ErrKeyIDNotFound = fmt.Errorf("%w: key ID not found in key set", ErrAuth)

	// ErrInvalidToken is returned when the token is structurally malformed.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrAuth)

	// ErrInvalidHeader is returned when the verifier rejects the token for
	// any reason other than expiry or an audience/issuer mismatch.
	ErrInvalidHeader = fmt.Errorf("%w: invalid header", ErrInvalidToken)

	// ErrInvalidClaims is returned when the token's audience or issuer does
	// not match the configured values.
	ErrInvalidClaims = fmt.Errorf("%w: invalid claims", ErrInvalidToken)

	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = fmt.Errorf("%w: token is expired", ErrAuth)
)

// ErrKeySource is returned by RefreshKeys when the key set cannot be fetched
// or parsed. It is deliberately not part of the ErrAuth hierarchy: it
// describes the health of the key endpoint, not of any particular token.
var ErrKeySource = errors.New("key source error")
