package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("my-secret-key", time.Hour)

	require.NotNil(t, gen)
	assert.Equal(t, "my-secret-key", string(gen.secret))
	assert.Equal(t, time.Hour, gen.expiration)
}

// TestGenerator_GenerateToken は生成されたトークンが署名検証でき、正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
		caps    []string
	}{
		{"editor", "editor@example.com", []string{CapabilityEditPosts}},
		{"no caps", "reader", nil},
		{"several caps", "admin", []string{"manage_options", CapabilityEditPosts}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
			gen := NewGenerator("secret", 2*time.Hour)
			gen.now = func() time.Time { return now }

			tokenStr, err := gen.GenerateToken(tt.subject, tt.caps)
			require.NoError(t, err)

			claims := &Claims{}
			_, err = jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte("secret"), nil
			}, jwt.WithTimeFunc(func() time.Time { return now }))
			require.NoError(t, err)

			assert.Equal(t, tt.subject, claims.Subject)
			assert.Equal(t, tt.caps, claims.Caps)
			assert.Equal(t, now.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
			assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
		})
	}
}

func TestGenerator_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator("", time.Hour).GenerateToken("editor", []string{CapabilityEditPosts})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestClaims_HasCapability(t *testing.T) {
	t.Parallel()

	c := &Claims{Caps: []string{"read", CapabilityEditPosts}}
	assert.True(t, c.HasCapability(CapabilityEditPosts))
	assert.False(t, c.HasCapability("manage_options"))
	assert.False(t, (&Claims{}).HasCapability(CapabilityEditPosts))
}
