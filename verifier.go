package jwks

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SignatureVerifier is the cryptographic verification primitive: it checks
// the token's signature against the resolved key, enforces the algorithm
// allowlist, and validates the exp, aud and iss claims. Implementations may
// return the jwt/v5 sentinel errors or errors from the package taxonomy;
// anything else is mapped to ErrInvalidHeader by the validator.
type SignatureVerifier interface {
	Decode(token string, key *rsa.PublicKey, algorithms []string, audience, issuer string) (Claims, error)
}

type jwtVerifier struct{}

func (jwtVerifier) Decode(token string, key *rsa.PublicKey, algorithms []string, audience, issuer string) (Claims, error) {
	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods(algorithms),
		jwt.WithAudience(audience),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return Claims(claims), nil
}

// mapVerifierError translates verifier failures into the package taxonomy.
// Taxonomy errors pass through untouched so custom verifiers can classify
// failures themselves.
func mapVerifierError(err error) error {
	switch {
	case errors.Is(err, ErrAuth):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: check the audience and issuer", ErrInvalidClaims)
	default:
		return fmt.Errorf("%w: unable to verify authentication token", ErrInvalidHeader)
	}
}
