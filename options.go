package jwks

import (
	"log/slog"
	"time"
)

// Defaults applied by NewTokenValidator and NewTokenFetcher.
const (
	DefaultKeyRefreshInterval = time.Hour
	DefaultGrantType          = "client_credentials"
	DefaultTokenEndpoint      = "oauth/token"
)

// DefaultAlgorithms is the signature algorithm allowlist used when
// ValidatorOptions.Algorithms is empty.
var DefaultAlgorithms = []string{"RS256"}

// ValidatorOptions configures a TokenValidator. Fixed at construction.
type ValidatorOptions struct {
	// JwksURI is the key set endpoint. Required unless Issuer discovery is
	// used via NewTokenValidatorFromIssuer.
	JwksURI string
	// Audience and Issuer are matched against the token's claims. Required.
	Audience string
	Issuer   string
	// Algorithms is the accepted signature algorithm set. Defaults to
	// DefaultAlgorithms.
	Algorithms []string
	// KeyRefreshInterval bounds the age of the key cache before a lazy
	// refresh is attempted. Defaults to DefaultKeyRefreshInterval.
	KeyRefreshInterval time.Duration
	// KeySource overrides how the key set is fetched. Defaults to an
	// HTTPKeySetSource on the package HTTP client.
	KeySource KeySetSource
	// Verifier overrides the signature verification primitive.
	Verifier SignatureVerifier
	// Logger receives a warning when an opportunistic refresh fails and
	// validation proceeds on the stale cache. Defaults to discarding.
	Logger *slog.Logger
}

// FetcherOptions configures a TokenFetcher. Fixed at construction.
type FetcherOptions struct {
	ClientID     string
	ClientSecret string
	Audience     string
	// Issuer is the base URL the token endpoint is resolved against.
	Issuer string
	// GrantType defaults to DefaultGrantType.
	GrantType string
	// TokenEndpoint is resolved relative to Issuer. Defaults to
	// DefaultTokenEndpoint.
	TokenEndpoint string
}
