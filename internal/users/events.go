package users

import (
	"time"

	"github.com/nfrund/userdesk/internal/pubsub"
)

// UserDeleted is published after a user record has been removed.
type UserDeleted struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	DeletedAt time.Time `json:"deletedAt"`
}

// UserEmailed is published after a notification email was handed to the sender.
type UserEmailed struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	SentAt time.Time `json:"sentAt"`
}

var (
	Deleted = pubsub.NewEvent[UserDeleted]("users.deleted", "A user record was deleted")
	Emailed = pubsub.NewEvent[UserEmailed]("users.emailed", "A notification email was sent to a user")
)
