package testutils

import (
	"context"
	"sync"

	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/pubsub"
)

// SentEmail is one call to RecordingMailer.Send.
type SentEmail struct {
	To, Subject, Body string
}

// RecordingMailer is a domain.EmailSender that keeps what it was asked to send.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []SentEmail
	// Err, when set, is returned by Send and nothing is recorded.
	Err error
}

func (m *RecordingMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, SentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns a copy of the recorded emails.
func (m *RecordingMailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.sent...)
}

// RecordingPublisher is a pubsub.Publisher that keeps published messages.
type RecordingPublisher struct {
	mu       sync.Mutex
	messages []pubsub.Message
	Err      error
}

func (p *RecordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Messages returns a copy of the published messages.
func (p *RecordingPublisher) Messages() []pubsub.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pubsub.Message(nil), p.messages...)
}

var (
	_ domain.EmailSender = (*RecordingMailer)(nil)
	_ pubsub.Publisher   = (*RecordingPublisher)(nil)
)
