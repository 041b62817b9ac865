package jwks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// TokenFetcher obtains an access token for this process through the client
// credentials grant. It is stateless aside from its options and safe for
// concurrent use. It performs no retries; a failed attempt is terminal for
// that call.
type TokenFetcher struct {
	clientID      string
	clientSecret  string
	audience      string
	issuer        string
	grantType     string
	tokenEndpoint string
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// NewTokenFetcher builds a fetcher. ClientID, ClientSecret, Audience and
// Issuer are required.
func NewTokenFetcher(opts FetcherOptions) (*TokenFetcher, error) {
	if opts.ClientID == "" {
		return nil, errors.New("jwks: ClientID is required")
	}
	if opts.ClientSecret == "" {
		return nil, errors.New("jwks: ClientSecret is required")
	}
	if opts.Audience == "" {
		return nil, errors.New("jwks: Audience is required")
	}
	if opts.Issuer == "" {
		return nil, errors.New("jwks: Issuer is required")
	}
	grantType := opts.GrantType
	if grantType == "" {
		grantType = DefaultGrantType
	}
	endpoint := opts.TokenEndpoint
	if endpoint == "" {
		endpoint = DefaultTokenEndpoint
	}
	return &TokenFetcher{
		clientID:      opts.ClientID,
		clientSecret:  opts.ClientSecret,
		audience:      opts.Audience,
		issuer:        opts.Issuer,
		grantType:     grantType,
		tokenEndpoint: endpoint,
	}, nil
}

// FetchToken posts the client credentials grant to the token endpoint and
// returns the access token. A non-200 response or an unparseable body yields
// an ErrAuth kind error carrying the observed status.
func (f *TokenFetcher) FetchToken() (string, error) {
	endpoint, err := f.tokenURL()
	if err != nil {
		return "", fmt.Errorf("%w: resolving token endpoint: %v", ErrAuth, err)
	}
	body, err := json.Marshal(tokenRequest{
		ClientID:     f.clientID,
		ClientSecret: f.clientSecret,
		Audience:     f.audience,
		GrantType:    f.grantType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encoding token request: %v", ErrAuth, err)
	}

	resp, err := httpClient.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: requesting token: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: received HTTP %d from API when fetching token", ErrAuth, resp.StatusCode)
	}
	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: parsing token response: %v", ErrAuth, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: token response has no access_token", ErrAuth)
	}
	return token.AccessToken, nil
}

// tokenURL resolves the token endpoint against the issuer base URL,
// following RFC 3986 reference resolution.
func (f *TokenFetcher) tokenURL() (string, error) {
	base, err := url.Parse(f.issuer)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(f.tokenEndpoint)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
