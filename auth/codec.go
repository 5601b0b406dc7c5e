package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Verification failures. Expired tokens are reported separately so callers
// can tell a stale credential from a forged or garbled one.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed or signature invalid")
)

// Claims is the decoded payload of a credential.
type Claims struct {
	UserID    int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal builds the request-scoped identity asserted by these claims.
func (c Claims) Principal() Principal {
	return Principal{ID: c.UserID, Name: c.Username, Authenticated: true}
}

// TokenCodec issues and verifies HMAC-signed bearer tokens. Every service
// holds the same pre-shared secret, so each one verifies tokens locally with
// no call back to the issuer. The codec is immutable after construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec returns a codec signing with secret and issuing tokens valid
// for ttl.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting p's identity, valid from now for the codec's
// TTL. Claim names match the cross-service wire format: user_id, username,
// iat, exp.
func (tc *TokenCodec) Issue(p Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  p.ID,
		"username": p.Name,
		"iat":      now.Unix(),
		"exp":      now.Add(tc.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify parses and validates a token string. It returns ErrTokenExpired for
// a well-signed token past its exp, and ErrTokenMalformed for anything that
// fails to parse, carries a non-HMAC signing method, has a bad signature, or
// is missing required claims. Verification is pure: no I/O, no clock state
// beyond time.Now.
func (tc *TokenCodec) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil {
		// Expiry only counts when it is the sole failure: a token that is
		// both forged and expired is invalid, not stale.
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors == jwt.ValidationErrorExpired {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrTokenMalformed
	}

	// Numeric claims decode as float64 from JSON.
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	username, ok := mapClaims["username"].(string)
	if !ok || username == "" {
		return Claims{}, ErrTokenMalformed
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}

	claims := Claims{
		UserID:    int64(userID),
		Username:  username,
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	return claims, nil
}

// TTL reports the validity window the codec stamps on issued tokens.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}
