package jwks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// httpClient is the client used for all outbound requests. Package scoped so
// tests can stub it with httpmock.ActivateNonDefault.
var httpClient = &http.Client{}

// KeySetSource fetches the full key set from a JWKS endpoint.
type KeySetSource interface {
	FetchKeys(ctx context.Context, uri string) ([]JSONWebKey, error)
}

// HTTPKeySetSource fetches and parses a JWKS document over HTTP.
type HTTPKeySetSource struct {
	// Client overrides the package HTTP client when set.
	Client *http.Client
}

func (s *HTTPKeySetSource) FetchKeys(ctx context.Context, uri string) ([]JSONWebKey, error) {
	client := s.Client
	if client == nil {
		client = httpClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("building key set request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received HTTP %d from key set endpoint", resp.StatusCode)
	}
	var set JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing key set: %w", err)
	}
	return set.Keys, nil
}
