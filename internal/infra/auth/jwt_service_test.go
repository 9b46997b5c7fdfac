package auth

import (
	"strings"
	"testing"
	"time"

	"pharmacy/config"
	"pharmacy/internal/domain/service"
	"pharmacy/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_token_secret_key_very_long_for_testing"

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func newTestJWTService(t *testing.T, validity time.Duration) (*jwtService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{current: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc, err := newJWTService(testSecret, validity, clock.Now)
	require.NoError(t, err)

	return svc, clock
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)

	token, err := svc.Issue("alice", 42)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, clock.current, claims.IssuedAt.Time.UTC())
	assert.Equal(t, clock.current.Add(time.Hour), claims.ExpiresAt.Time.UTC())

	assert.True(t, svc.Verify(token))
	assert.Equal(t, "alice", svc.ExtractSubject(token))
}

func TestJWTService_ValidityWindow(t *testing.T) {
	svc, clock := newTestJWTService(t, time.Hour)

	token, err := svc.Issue("alice", 1)
	require.NoError(t, err)

	clock.current = clock.current.Add(59*time.Minute + 59*time.Second)
	assert.True(t, svc.Verify(token))

	// Expiration must be strictly in the future.
	clock.current = clock.current.Add(time.Second)
	assert.False(t, svc.Verify(token))

	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	token, err := svc.Issue("alice", 1)
	require.NoError(t, err)

	signatureStart := strings.LastIndex(token, ".") + 1
	for i := signatureStart; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		assert.False(t, svc.Verify(tampered), "tampered signature at offset %d must not verify", i)
	}
}

func TestJWTService_TamperedClaims(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	token, err := svc.Issue("alice", 1)
	require.NoError(t, err)

	forged, err := svc.Issue("mallory", 2)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = svc.Validate(spliced)
	assert.True(t, errors.Is(err, service.ErrTokenSignatureInvalid))
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)
	other, err := newJWTService(testSecret+"_rotated", time.Hour, time.Now)
	require.NoError(t, err)

	token, err := other.Issue("alice", 1)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, service.ErrTokenSignatureInvalid))
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	claims := &service.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.False(t, svc.Verify(hs512))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, svc.Verify(none))
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, _ := newTestJWTService(t, time.Hour)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c", "...."} {
		_, err := svc.Validate(token)
		assert.Error(t, err)
		assert.False(t, svc.Verify(token))
		assert.Empty(t, svc.ExtractSubject(token))
	}

	_, err := svc.Validate("clearly-not-a-jwt-token-format")
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
}

func TestNewJWTService_Configuration(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{Auth: &config.AuthConfig{Token: config.TokenConfig{Secret: "", Validity: time.Hour}}})
	assert.ErrorContains(t, err, "jwt secret must be provided")

	_, err = NewJWTService(&config.Config{Auth: &config.AuthConfig{Token: config.TokenConfig{Secret: "short", Validity: time.Hour}}})
	assert.ErrorContains(t, err, "at least")

	_, err = NewJWTService(&config.Config{Auth: &config.AuthConfig{Token: config.TokenConfig{Secret: testSecret}}})
	assert.ErrorContains(t, err, "validity")

	svc, err := NewJWTService(&config.Config{Auth: &config.AuthConfig{Token: config.TokenConfig{Secret: testSecret, Validity: time.Minute}}})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
