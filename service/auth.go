package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minKeyStrengthScore = 3
	tokenTTL            = 24 * time.Hour

	operatorRole = "operator"
)

var (
	ErrInvalidKey = errors.New("invalid access key")
	ErrWeakKey    = errors.New("access key is too weak")
)

// Auth issues tokens to operators holding the access key.
type Auth struct {
	keyHash   []byte
	tokenizer i.Tokenizer
}

// NewAuthService checks the strength of key and keeps only its hash.
func NewAuthService(key string, tokenizer i.Tokenizer) (*Auth, error) {
	if zxcvbn.PasswordStrength(key, nil).Score < minKeyStrengthScore {
		return nil, ErrWeakKey
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Auth{
		keyHash:   hash,
		tokenizer: tokenizer,
	}, nil
}

// IssueToken returns a bearer token valid for a day.
func (a *Auth) IssueToken(key string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(a.keyHash, []byte(key)); err != nil {
		return "", ErrInvalidKey
	}

	return a.tokenizer.Generate(map[string]interface{}{
		"role": operatorRole,
	}, tokenTTL)
}
