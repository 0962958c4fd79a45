package i

// Authenticator exchanges the operator access key for a bearer token.
type Authenticator interface {
	IssueToken(key string) (string, error)
}
