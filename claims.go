package jwks

// Claims is the decoded JWT payload: an open mapping of claim names to
// JSON values. Beyond the audience, issuer and expiry checks performed
// during validation, claims are not interpreted by this package.
type Claims map[string]interface{}

// Subject returns the sub claim, or "" when absent.
func (c Claims) Subject() string {
	s, _ := c["sub"].(string)
	return s
}

// Scope returns the scope claim, or "" when absent.
func (c Claims) Scope() string {
	s, _ := c["scope"].(string)
	return s
}
