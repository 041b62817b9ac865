package jwks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OpenIDConfig is used to parse the response from the well known endpoint, and extract the jwks_uri
type OpenIDConfig struct {
	JwksURI string `json:"jwks_uri,omitempty"`
}

// DiscoverJWKSURI resolves the jwks_uri advertised by an issuer's well known
// openid-configuration endpoint.
func DiscoverJWKSURI(ctx context.Context, issuer string) (string, error) {
	wke := fmt.Sprintf("%s/.well-known/openid-configuration", issuer)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wke, nil)
	if err != nil {
		return "", fmt.Errorf("building discovery request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching openid configuration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received HTTP %d from openid configuration endpoint", resp.StatusCode)
	}
	var cfg OpenIDConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return "", fmt.Errorf("parsing openid configuration: %w", err)
	}
	if cfg.JwksURI == "" {
		return "", fmt.Errorf("openid configuration for %s has no jwks_uri", issuer)
	}
	return cfg.JwksURI, nil
}
