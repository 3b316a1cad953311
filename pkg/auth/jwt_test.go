package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func hmacToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(roles ...string) Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bib-identity",
			Subject:   "client-42",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		ClientID: "erp-connector",
		Roles:    roles,
	}
}

func TestNewVerifier_RequiresKey(t *testing.T) {
	_, err := NewVerifier(VerifierConfig{})
	assert.ErrorContains(t, err, "requires PublicKeyPEM or Secret")

	_, err = NewVerifier(VerifierConfig{PublicKeyPEM: []byte("not pem")})
	assert.ErrorContains(t, err, "failed to parse RSA public key")
}

func TestVerifier_HMAC(t *testing.T) {
	v, err := NewVerifier(VerifierConfig{Secret: testSecret, Issuer: "bib-identity"})
	require.NoError(t, err)
	assert.False(t, v.IsRSA())

	claims, err := v.Verify(hmacToken(t, testSecret, validClaims(RoleOperator)))
	require.NoError(t, err)
	assert.Equal(t, "client-42", claims.Subject)
	assert.Equal(t, "erp-connector", claims.ClientID)
	assert.Equal(t, []string{RoleOperator}, claims.Roles)
}

func TestVerifier_Rejects(t *testing.T) {
	v, err := NewVerifier(VerifierConfig{Secret: testSecret, Issuer: "bib-identity"})
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	otherIssuer := validClaims()
	otherIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", hmacToken(t, "another-secret", validClaims())},
		{"expired", hmacToken(t, testSecret, expired)},
		{"no expiry", hmacToken(t, testSecret, noExpiry)},
		{"wrong issuer", hmacToken(t, testSecret, otherIssuer)},
		{"garbage", "not.a.jwt"},
		{"none alg", func() string {
			s, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
			require.NoError(t, err)
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifier_RSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jwt.pub")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}), 0o600))
	pubPEM, err := LoadKeyFromFile(path)
	require.NoError(t, err)

	v, err := NewVerifier(VerifierConfig{PublicKeyPEM: pubPEM})
	require.NoError(t, err)
	assert.True(t, v.IsRSA())

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims(RoleAdmin)).SignedString(key)
	require.NoError(t, err)
	claims, err := v.Verify(signed)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleAdmin))

	// An HMAC token signed with the public key bytes must not pass.
	confused := hmacToken(t, string(pubPEM), validClaims(RoleAdmin))
	_, err = v.Verify(confused)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoadKeyFromFile_Missing(t *testing.T) {
	_, err := LoadKeyFromFile(filepath.Join(t.TempDir(), "missing.pem"))
	assert.ErrorContains(t, err, "failed to read key file")
}

func TestClaims_HasAnyRole(t *testing.T) {
	c := Claims{Roles: []string{RoleOperator}}

	assert.True(t, c.HasAnyRole())
	assert.True(t, c.HasAnyRole(RoleAdmin, RoleOperator))
	assert.False(t, c.HasAnyRole(RoleAdmin, RoleAPIClient))
	assert.False(t, Claims{}.HasAnyRole(RoleAdmin))
}
