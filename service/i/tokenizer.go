package i

import "time"

// Tokenizer signs and verifies bearer tokens.
type Tokenizer interface {
	// Generate signs claims into a token that expires after ttl.
	Generate(claims map[string]any, ttl time.Duration) (string, error)

	// Decode verifies signature, expiry and issuer and returns the claims.
	Decode(token string) (map[string]any, error)
}
