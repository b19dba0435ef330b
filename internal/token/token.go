// Package token implements the stateless token engine: HMAC-SHA256 signed
// JWTs carrying the subject and role. Validation uses only the signature and
// the embedded timestamps; the user record is never consulted, so a role
// change only shows up in tokens issued after it.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the scheme marker carried by issued tokens and required on
// the Authorization header.
const BearerPrefix = "Bearer "

const defaultLifetime = 30 * time.Minute

// Validation failures are distinguishable internally for logging and tests,
// but the API boundary collapses all of them to a single invalid-token code.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Claims are the decoded contents of a validated token. The role rides in
// the "auth" claim; the subject is the username.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"auth"`
}

// Engine signs and verifies tokens with a single deployment secret, loaded
// once at startup and read-only thereafter.
type Engine struct {
	secret   []byte
	lifetime time.Duration
}

func NewEngine(secret string, lifetime time.Duration) *Engine {
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	return &Engine{secret: []byte(secret), lifetime: lifetime}
}

// Issue builds and signs a token for the given subject and role, valid from
// now until now plus the configured lifetime. The returned string carries the
// "Bearer " prefix and is sent to clients verbatim.
func (e *Engine) Issue(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.lifetime)),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.secret)
	if err != nil {
		return "", err
	}
	return BearerPrefix + signed, nil
}

// Validate decodes the token, verifies the signature against the secret and
// the expiry against the current time. tokenString is the bare JWT, without
// the "Bearer " prefix.
func (e *Engine) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return e.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// ExtractBearer strips the "Bearer " scheme marker from an Authorization
// header value. A missing or malformed prefix yields ok=false, meaning no
// credential was supplied at all — distinct from an invalid credential.
func ExtractBearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
