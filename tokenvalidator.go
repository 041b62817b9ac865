// Package jwks validates bearer tokens against a refreshable cache of
// signing keys fetched from a JSON Web Key Set endpoint, and fetches access
// tokens through the client credentials grant.
package jwks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidator owns a kid indexed cache of public keys and validates
// inbound tokens against them. A single instance is meant to be constructed
// at startup and shared across request handlers; all methods are safe for
// concurrent use.
type TokenValidator struct {
	jwksURI         string
	audience        string
	issuer          string
	algorithms      []string
	refreshInterval time.Duration

	source   KeySetSource
	verifier SignatureVerifier
	logger   *slog.Logger
	now      func() time.Time

	mu            sync.RWMutex
	keys          map[string]JSONWebKey
	lastRefreshed time.Time
}

// NewTokenValidator builds a validator and eagerly performs the initial key
// set refresh. It returns the key source error if that refresh fails: a
// validator never exists with an empty, unrefreshed cache.
func NewTokenValidator(opts ValidatorOptions) (*TokenValidator, error) {
	if opts.JwksURI == "" {
		return nil, errors.New("jwks: JwksURI is required")
	}
	if opts.Audience == "" {
		return nil, errors.New("jwks: Audience is required")
	}
	if opts.Issuer == "" {
		return nil, errors.New("jwks: Issuer is required")
	}

	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = DefaultAlgorithms
	}
	interval := opts.KeyRefreshInterval
	if interval <= 0 {
		interval = DefaultKeyRefreshInterval
	}
	source := opts.KeySource
	if source == nil {
		source = &HTTPKeySetSource{}
	}
	verifier := opts.Verifier
	if verifier == nil {
		verifier = jwtVerifier{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	v := &TokenValidator{
		jwksURI:         opts.JwksURI,
		audience:        opts.Audience,
		issuer:          opts.Issuer,
		algorithms:      algorithms,
		refreshInterval: interval,
		source:          source,
		verifier:        verifier,
		logger:          logger,
		now:             time.Now,
	}
	if err := v.RefreshKeys(); err != nil {
		return nil, err
	}
	return v, nil
}

// NewTokenValidatorFromIssuer discovers the jwks_uri from the issuer's well
// known openid-configuration endpoint, then builds the validator. Any
// JwksURI already set on opts is ignored.
func NewTokenValidatorFromIssuer(opts ValidatorOptions) (*TokenValidator, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwks: Issuer is required")
	}
	uri, err := DiscoverJWKSURI(context.Background(), opts.Issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeySource, err)
	}
	opts.JwksURI = uri
	return NewTokenValidator(opts)
}

// NeedsRefresh reports whether the key cache is older than the configured
// refresh interval. It has no side effect.
func (v *TokenValidator) NeedsRefresh() bool {
	v.mu.RLock()
	last := v.lastRefreshed
	v.mu.RUnlock()
	return v.now().Sub(last) > v.refreshInterval
}

// RefreshKeys fetches the full key set and atomically replaces the cache
// with it: keys absent from the new set are dropped. On failure the existing
// cache is left untouched and an ErrKeySource kind error is returned. The
// network fetch happens outside the lock; only the swap is guarded.
func (v *TokenValidator) RefreshKeys() error {
	fetched, err := v.source.FetchKeys(context.Background(), v.jwksURI)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeySource, err)
	}
	fresh := make(map[string]JSONWebKey, len(fetched))
	for _, key := range fetched {
		fresh[key.Kid] = key
	}

	v.mu.Lock()
	v.keys = fresh
	v.lastRefreshed = v.now()
	v.mu.Unlock()
	return nil
}

// Validate checks the token's signature, expiry, audience and issuer against
// the cached keys and returns its claims. The key cache is lazily refreshed
// when it has gone stale; if that refresh fails, validation proceeds on the
// existing cache so that a transient key endpoint outage does not break
// tokens signed by already cached keys. A kid missing from the cache forces
// exactly one additional refresh before the lookup is declared failed.
func (v *TokenValidator) Validate(token string) (Claims, error) {
	if v.NeedsRefresh() {
		if err := v.RefreshKeys(); err != nil {
			v.logger.Warn("key set refresh failed, validating against cached keys", "error", err)
		}
	}

	kid, err := tokenKeyID(token)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse key ID from token", ErrInvalidToken)
	}

	key, ok := v.lookupKey(kid)
	if !ok {
		// Key rotation may have introduced this kid since the last
		// refresh. One forced refresh, one retry, then give up.
		if err := v.RefreshKeys(); err != nil {
			v.logger.Warn("forced key set refresh failed", "kid", kid, "error", err)
		}
		if key, ok = v.lookupKey(kid); !ok {
			return nil, ErrKeyIDNotFound
		}
	}

	pub, err := key.RSAKey()
	if err != nil {
		return nil, fmt.Errorf("%w: unusable key material for kid %q", ErrInvalidHeader, kid)
	}

	claims, err := v.verifier.Decode(token, pub, v.algorithms, v.audience, v.issuer)
	if err != nil {
		return nil, mapVerifierError(err)
	}
	return claims, nil
}

// ValidateBearerToken extracts the bearer token from the request's
// Authorization header and validates it.
func (v *TokenValidator) ValidateBearerToken(r *http.Request) (Claims, error) {
	token, err := GetBearerToken(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return v.Validate(token)
}

func (v *TokenValidator) lookupKey(kid string) (JSONWebKey, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok := v.keys[kid]
	return key, ok
}

// tokenKeyID extracts the kid from the token header without verifying the
// signature.
func tokenKeyID(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	kid, ok := parsed.Header["kid"].(string)
	if !ok || kid == "" {
		return "", errors.New("token header has no kid")
	}
	return kid, nil
}
