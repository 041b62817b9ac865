package jwks

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JSONWebKey models one entry of a JSON Web Key Set (RFC 7517). Instances are
// created fresh on every key set refresh and never mutated.
type JSONWebKey struct {
	Alg string   `json:"alg,omitempty"`
	Kty string   `json:"kty,omitempty"`
	Use string   `json:"use,omitempty"`
	N   string   `json:"n,omitempty"`
	E   string   `json:"e,omitempty"`
	Kid string   `json:"kid,omitempty"`
	X5t string   `json:"x5t,omitempty"`
	X5c []string `json:"x5c,omitempty"`
}

// JSONWebKeySet is the wire form of a JWKS document.
type JSONWebKeySet struct {
	Keys []JSONWebKey `json:"keys"`
}

// rsaKey is the minimal subset of JWK fields the verifier needs.
type rsaKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// RSAKey derives the verifier-ready public key from the JWK's modulus and
// exponent.
func (k JSONWebKey) RSAKey() (*rsa.PublicKey, error) {
	raw, err := json.Marshal(rsaKey{Kty: k.Kty, Kid: k.Kid, Use: k.Use, N: k.N, E: k.E})
	if err != nil {
		return nil, fmt.Errorf("marshaling key %q: %w", k.Kid, err)
	}
	key, err := jwk.ParseKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing key %q: %w", k.Kid, err)
	}
	var pub rsa.PublicKey
	if err := key.Raw(&pub); err != nil {
		return nil, fmt.Errorf("materializing RSA key %q: %w", k.Kid, err)
	}
	return &pub, nil
}
