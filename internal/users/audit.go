package users

import (
	"context"
	"log/slog"

	"github.com/nfrund/userdesk/internal/pubsub"
)

// AuditSubscriber writes user events to the log.
type AuditSubscriber struct {
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewAuditSubscriber creates an AuditSubscriber. A nil logger uses slog.Default.
func NewAuditSubscriber(sub pubsub.Subscriber, logger *slog.Logger) *AuditSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditSubscriber{subscriber: sub, logger: logger.With("component", "audit")}
}

// Start subscribes to the user events. Delivery stops when ctx is canceled.
func (a *AuditSubscriber) Start(ctx context.Context) error {
	if err := pubsub.Subscribe(ctx, a.subscriber, Deleted, a.handleDeleted); err != nil {
		return err
	}
	return pubsub.Subscribe(ctx, a.subscriber, Emailed, a.handleEmailed)
}

func (a *AuditSubscriber) handleDeleted(ctx context.Context, msg pubsub.Message, e UserDeleted) error {
	a.logger.InfoContext(ctx, "user deleted",
		"event_id", msg.Metadata[pubsub.MetaKeyEventID],
		"actor", msg.UserID,
		"user_id", e.UserID,
		"email", e.Email,
		"at", e.DeletedAt,
	)
	return nil
}

func (a *AuditSubscriber) handleEmailed(ctx context.Context, msg pubsub.Message, e UserEmailed) error {
	a.logger.InfoContext(ctx, "user emailed",
		"event_id", msg.Metadata[pubsub.MetaKeyEventID],
		"actor", msg.UserID,
		"user_id", e.UserID,
		"email", e.Email,
		"at", e.SentAt,
	)
	return nil
}
