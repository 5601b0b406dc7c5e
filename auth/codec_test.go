package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", 24*time.Hour)

	token, err := codec.Issue(Principal{ID: 42, Name: "alice", Authenticated: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, time.Minute)

	principal := claims.Principal()
	assert.Equal(t, int64(42), principal.ID)
	assert.Equal(t, "alice", principal.Name)
	assert.True(t, principal.Authenticated)
}

func TestVerifyExpiredToken(t *testing.T) {
	// A negative TTL issues a token that is already past its exp.
	codec := NewTokenCodec("test-secret", -time.Hour)

	token, err := codec.Issue(Principal{ID: 7, Name: "bob", Authenticated: true})
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue(Principal{ID: 7, Name: "bob", Authenticated: true})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Corrupt the claims segment.
	tamperedPayload := parts[0] + "." + flipByte(parts[1]) + "." + parts[2]
	_, err = codec.Verify(tamperedPayload)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	// Corrupt the signature segment.
	tamperedSig := parts[0] + "." + parts[1] + "." + flipByte(parts[2])
	_, err = codec.Verify(tamperedSig)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyExpiredAndForgedToken(t *testing.T) {
	// A token that is both expired and badly signed is invalid, not stale:
	// nothing an unverified payload asserts, exp included, can be trusted.
	codec := NewTokenCodec("test-secret", -time.Hour)

	token, err := codec.Issue(Principal{ID: 7, Name: "bob", Authenticated: true})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	tampered := parts[0] + "." + parts[1] + "." + flipByte(parts[2])
	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.NotErrorIs(t, err, ErrTokenExpired)

	// Same for an expired token signed with a different secret.
	otherCodec := NewTokenCodec("other-secret", time.Hour)
	_, err = otherCodec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-one", time.Hour)
	verifier := NewTokenCodec("secret-two", time.Hour)

	token, err := issuer.Issue(Principal{ID: 7, Name: "bob", Authenticated: true})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyGarbage(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c", "a.b"} {
		_, err := codec.Verify(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}

func TestVerifyUnsignedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id":  int64(7),
		"username": "bob",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyMissingClaims(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "bob",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	token, err := noUser.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

// flipByte changes one character of a base64url segment.
func flipByte(segment string) string {
	b := []byte(segment)
	if b[0] == 'A' {
		b[0] = 'B'
	} else {
		b[0] = 'A'
	}
	return string(b)
}
