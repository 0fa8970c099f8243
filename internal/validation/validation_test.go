package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email           string `form:"email" validate:"required,email"`
	DisplayName     string `form:"displayName" validate:"max=5"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"eqfield=Password"`
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"id":                  "Id",
		"displayName":         "Display name",
		"avatarUrl":           "Avatar url",
		"password_confirm":    "Password confirm",
		"ResetTokenExpiresAt": "Reset token expires at",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Label(in), "key %q", in)
	}
}

func TestCheck_Messages(t *testing.T) {
	v := New()

	fields, err := v.Check(signupForm{DisplayName: "far too long", Password: "short", PasswordConfirm: "other"})
	require.NoError(t, err)
	assert.Equal(t, "Email is required", fields["email"])
	assert.Equal(t, "Display name must be at most 5 characters", fields["displayName"])
	assert.Equal(t, "Password must be at least 8 characters", fields["password"])
	assert.Equal(t, "Password confirm must match password", fields["password_confirm"])
}

func TestCheck_Valid(t *testing.T) {
	fields, err := New().Check(signupForm{Email: "a@b.co", Password: "longenough", PasswordConfirm: "longenough"})
	assert.NoError(t, err)
	assert.Nil(t, fields)
}

func TestCheck_BadEmail(t *testing.T) {
	fields, err := New().Check(signupForm{Email: "nope", Password: "longenough", PasswordConfirm: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "Email must be a valid email address", fields["email"])
}

func TestCheck_NonStruct(t *testing.T) {
	fields, err := New().Check("not a struct")
	assert.Error(t, err)
	assert.Nil(t, fields)
}
