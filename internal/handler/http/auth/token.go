package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the bearer token payload. Email is the stable user identity;
// Subject carries the same value for clients that only read "sub".
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the email carried by the token.
func (c *Claims) Identity() string {
	if e := strings.TrimSpace(c.Email); e != "" {
		return e
	}
	return strings.TrimSpace(c.Subject)
}

// Issuer signs HS256 tokens. The session provider normally does this;
// cmd/token uses it to mint development tokens.
type Issuer struct {
	Secret []byte
	Name   string
	TTL    time.Duration
	Now    func() time.Time
}

// Issue returns a signed token for email and its expiry.
func (i Issuer) Issue(email string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", time.Time{}, errors.New("email is required")
	}
	if len(i.Secret) == 0 {
		return "", time.Time{}, errors.New("signing secret is required")
	}
	now := time.Now
	if i.Now != nil {
		now = i.Now
	}
	issuedAt := now()
	expires := issuedAt.Add(i.TTL)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.Name,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := tok.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	tokensIssuedTotal.Inc()
	return signed, expires, nil
}
