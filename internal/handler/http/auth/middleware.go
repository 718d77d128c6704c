// Package auth resolves the caller's identity from an HS256 bearer token.
// The token is issued by the session provider; this package only verifies it
// and exposes the email it carries to the handlers.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsfox/internal/handler/http/respond"
	"newsfox/internal/observability/logging"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the resolved identity.
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, email)
}

// UserFromContext returns the identity set by Authz, or "" for anonymous callers.
func UserFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
	errNoIdentity   = errors.New("token has no email")
)

// Verifier validates bearer tokens.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier creates a verifier. An empty issuer skips the "iss" check.
func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer, now: time.Now}
}

// Verify parses the Authorization header value and returns the identity.
func (v *Verifier) Verify(authz string) (string, error) {
	const prefix = "Bearer "
	if len(authz) <= len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return "", errMissingToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(strings.TrimSpace(authz[len(prefix):]), &claims,
		func(*jwt.Token) (interface{}, error) { return v.secret, nil }, opts...)
	if err != nil || !tok.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", jwt.ErrTokenExpired
		}
		return "", errInvalidToken
	}
	id := claims.Identity()
	if id == "" {
		return "", errNoIdentity
	}
	return id, nil
}

// Authz requires a valid bearer token on every non-public endpoint and puts
// the token's email into the request context.
func (v *Verifier) Authz(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		user, err := v.Verify(r.Header.Get("Authorization"))
		RecordAuthzCheckDuration(time.Since(start).Seconds())
		if err != nil {
			RecordAuthFailure(failureReason(err))
			logging.FromContext(r.Context()).Debug("request rejected",
				"path", r.URL.Path, "reason", err.Error())
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		RecordAuthSuccess()
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "missing"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, errNoIdentity):
		return "no_identity"
	default:
		return "invalid"
	}
}
