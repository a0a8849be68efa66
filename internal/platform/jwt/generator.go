package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a token is requested without a signing secret.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Claims は編集者トークンのクレームです。capsに付与された権限を列挙します。
type Claims struct {
	Caps []string `json:"caps"`
	jwt.RegisteredClaims
}

// HasCapability reports whether the token grants capability.
func (c *Claims) HasCapability(capability string) bool {
	for _, v := range c.Caps {
		if v == capability {
			return true
		}
	}
	return false
}

// generator はHS256で署名したトークンを発行します。
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed token for subject carrying caps.
func (g *generator) GenerateToken(subject string, caps []string) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrEmptySecret
	}

	now := g.now()
	claims := Claims{
		Caps: caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
