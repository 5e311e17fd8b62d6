package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
	ErrExpired    = errors.New("jwtx: token expired")

	errShortKey = errors.New("jwtx: signing key must be at least 32 bytes")
)

// Signer seals claims into a compact token string.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier checks a token and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies with a single symmetric key. The daemon derives
// the key from its machine secret, so slots written by one machine never
// verify on another.
type HS256 struct {
	key    []byte
	issuer string
}

// NewHS256 builds the sealer. The key must carry at least 256 bits.
func NewHS256(key []byte, issuer string) (*HS256, error) {
	if len(key) < 32 {
		return nil, errShortKey
	}

	return &HS256{key: key, issuer: issuer}, nil
}

// Sign seals the claims.
func (s *HS256) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}

	return signed, nil
}

// Verify parses and validates the token, returning its claims. All parse
// and signature failures map onto the package sentinels so callers can
// treat "not a valid slot" uniformly.
func (s *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// mapParseError folds the jwt library's error taxonomy into ours.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
