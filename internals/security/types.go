package security

// SessionClaims is the identity payload carried inside a token. The shape is
// caller-supplied and opaque to this service; the only attribute anything
// relies on is an email-like identifier. Claims are never trusted unless they
// came out of ValidateToken.
type SessionClaims map[string]any

func (c SessionClaims) Email() string {
	if v, ok := c["email"].(string); ok {
		return v
	}
	return ""
}
