package domain

import (
	"context"
	"fmt"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserTable is the SurrealDB table holding user records.
const UserTable = "user"

// User represents the core user model in the application domain.
// The authentication fields are stored and displayed as opaque values; the
// database owns hashing, so nothing here derives or validates them.
type User struct {
	ID                  *surrealmodels.RecordID `json:"id,omitempty"`
	DisplayName         string                  `json:"displayName"`
	Email               string                  `json:"email"`
	AvatarURL           string                  `json:"avatarUrl"`
	HashedPassword      string                  `json:"hashedPassword,omitempty"`
	Salt                string                  `json:"salt,omitempty"`
	ResetToken          *string                 `json:"resetToken,omitempty"`
	ResetTokenExpiresAt *string                 `json:"resetTokenExpiresAt,omitempty"`
}

// Key returns the record id without its table prefix ("user:abc" -> "abc").
// It is the identifier used in routes, prompts and mutation requests.
func (u *User) Key() string {
	if u == nil || u.ID == nil {
		return ""
	}
	return fmt.Sprint(u.ID.ID)
}

// ResetTokenValue returns the reset token or an empty string.
func (u *User) ResetTokenValue() string {
	if u == nil || u.ResetToken == nil {
		return ""
	}
	return *u.ResetToken
}

// ResetTokenExpiry parses the stored RFC3339 expiry. It returns nil when the
// field is unset or cannot be parsed.
func (u *User) ResetTokenExpiry() *time.Time {
	if u == nil || u.ResetTokenExpiresAt == nil || *u.ResetTokenExpiresAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *u.ResetTokenExpiresAt)
	if err != nil {
		return nil
	}
	return &t
}

// NewUserID builds a record id in the user table from a route key.
func NewUserID(key string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(UserTable, key)
}

// UserUpdate carries the editable attributes of a user.
type UserUpdate struct {
	DisplayName string `json:"displayName" form:"displayName" validate:"max=120"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	AvatarURL   string `json:"avatarUrl" form:"avatarUrl" validate:"omitempty,url"`
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	FindByID(ctx context.Context, key string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, error)
	Create(ctx context.Context, user *User, password string) (*User, error)
	Update(ctx context.Context, key string, update UserUpdate) (*User, error)
	Delete(ctx context.Context, key string) error
	// CheckCredentials returns the user when the password matches.
	// It fails with ErrInvalidCredentials or ErrPasswordNotSet.
	CheckCredentials(ctx context.Context, email, password string) (*User, error)
	GenerateResetToken(ctx context.Context, email string, ttl time.Duration) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*User, error)
}

// Pagination constants
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)
