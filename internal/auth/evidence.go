package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidEvidence is returned for evidence that is malformed, unsigned,
// signed with another key or expired
var ErrInvalidEvidence = errors.New("invalid session evidence")

type evidenceClaims struct {
	Token       string `json:"tok,omitempty"`
	Role        string `json:"role,omitempty"`
	LoggedOutAt string `json:"logged_out,omitempty"`
	jwt.RegisteredClaims
}

// EvidenceCodec signs Evidence into the HS256 JWT stored in the client
// cookie, and verifies it on the way back
type EvidenceCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewEvidenceCodec creates a codec. A ttl <= 0 issues evidence without expiry.
func NewEvidenceCodec(secret string, ttl time.Duration) *EvidenceCodec {
	return &EvidenceCodec{secret: []byte(secret), ttl: ttl}
}

// Encode signs ev at time now
func (c *EvidenceCodec) Encode(ev Evidence, now time.Time) (string, error) {
	claims := evidenceClaims{
		Token:       ev.Token,
		Role:        ev.Role,
		LoggedOutAt: ev.LoggedOutAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  ev.Name,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error signing evidence: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry as of now and returns the
// evidence it carries
func (c *EvidenceCodec) Decode(signed string, now time.Time) (Evidence, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	}

	var claims evidenceClaims
	token, err := jwt.ParseWithClaims(signed, &claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return Evidence{}, fmt.Errorf("%w: %v", ErrInvalidEvidence, err)
	}

	return Evidence{
		Token:       claims.Token,
		Name:        claims.Subject,
		Role:        claims.Role,
		LoggedOutAt: claims.LoggedOutAt,
	}, nil
}
