package testutils

import (
	"github.com/google/uuid"
	"github.com/nfrund/userdesk/internal/domain"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// NewTestRecordID creates a new RecordID for testing purposes.
func NewTestRecordID(table string) *surrealmodels.RecordID {
	id := surrealmodels.NewRecordID(table, uuid.NewString())
	return &id
}

// NewTestUser builds a fully populated user with the given key.
func NewTestUser(key, email string) *domain.User {
	id := domain.NewUserID(key)
	token := "reset-" + key
	expires := "2030-01-02T03:04:05Z"
	return &domain.User{
		ID:                  &id,
		DisplayName:         "User " + key,
		Email:               email,
		AvatarURL:           "https://example.com/avatars/" + key + ".png",
		HashedPassword:      "$argon2id$v=19$hash-" + key,
		Salt:                "salt-" + key,
		ResetToken:          &token,
		ResetTokenExpiresAt: &expires,
	}
}
