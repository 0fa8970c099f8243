package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUser_Key(t *testing.T) {
	id := NewUserID("abc123")
	u := &User{ID: &id}
	assert.Equal(t, "abc123", u.Key())

	assert.Equal(t, "", (&User{}).Key())
	var nilUser *User
	assert.Equal(t, "", nilUser.Key())
}

func TestUser_ResetTokenExpiry(t *testing.T) {
	t.Run("parses RFC3339", func(t *testing.T) {
		u := &User{ResetTokenExpiresAt: strPtr("2024-03-01T10:30:00Z")}
		got := u.ResetTokenExpiry()
		require.NotNil(t, got)
		assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("nil when unset", func(t *testing.T) {
		assert.Nil(t, (&User{}).ResetTokenExpiry())
		assert.Nil(t, (&User{ResetTokenExpiresAt: strPtr("")}).ResetTokenExpiry())
	})

	t.Run("nil when unparsable", func(t *testing.T) {
		u := &User{ResetTokenExpiresAt: strPtr("tomorrow")}
		assert.Nil(t, u.ResetTokenExpiry())
	})
}

func TestUser_ResetTokenValue(t *testing.T) {
	assert.Equal(t, "", (&User{}).ResetTokenValue())
	assert.Equal(t, "tok", (&User{ResetToken: strPtr("tok")}).ResetTokenValue())
}
