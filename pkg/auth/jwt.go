package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("insufficient role")
)

// VerifierConfig selects how tokens are checked. PublicKeyPEM takes
// precedence over Secret.
type VerifierConfig struct {
	// Secret is the HMAC-SHA256 shared key.
	Secret string

	// PublicKeyPEM is a PEM-encoded RSA public key for RS256 tokens.
	PublicKeyPEM []byte

	// Issuer, when set, must match the token's iss claim.
	Issuer string

	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

// Verifier validates bearer tokens issued by the identity service. It never
// signs tokens.
type Verifier struct {
	key    any
	parser *jwt.Parser
}

func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	var (
		key    any
		method string
	)
	switch {
	case len(cfg.PublicKeyPEM) > 0:
		pub, err := jwt.ParseRSAPublicKeyFromPEM(cfg.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		key, method = pub, jwt.SigningMethodRS256.Alg()
	case cfg.Secret != "":
		key, method = []byte(cfg.Secret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("jwt configuration requires PublicKeyPEM or Secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Verifier{key: key, parser: jwt.NewParser(opts...)}, nil
}

// Verify parses tokenString and returns its claims. Every failure wraps
// ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// IsRSA reports whether the verifier expects RS256 tokens.
func (v *Verifier) IsRSA() bool {
	_, ok := v.key.(*rsa.PublicKey)
	return ok
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %q: %w", path, err)
	}
	return data, nil
}
