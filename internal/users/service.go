// Package users implements the operations behind the user administration
// pages: lookups, edits, deletion, notification emails, sign up and the
// password reset flow.
package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/pubsub"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/validation"
)

// DefaultResetTTL is how long a password reset link stays valid.
const DefaultResetTTL = time.Hour

// MutationResult identifies the record a mutation acted on.
type MutationResult struct {
	ID string `json:"id"`
}

// FormError carries per-field validation messages keyed by form field name.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, m := range e.Fields {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

// SignUpInput is the sign up form.
type SignUpInput struct {
	Email           string `form:"email" validate:"required,email"`
	DisplayName     string `form:"displayName" validate:"max=120"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"eqfield=Password"`
}

// ResetPasswordInput is the form that sets a new password from a reset link.
type ResetPasswordInput struct {
	Token           string `form:"token" validate:"required"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"eqfield=Password"`
}

// Dependencies holds what the service needs.
type Dependencies struct {
	Repository domain.UserRepository
	Mailer     domain.EmailSender
	Publisher  pubsub.Publisher
	Validator  *validation.Validator
	BaseURL    string
	ResetTTL   time.Duration
}

// Service coordinates storage, email and events for user records.
type Service struct {
	repo      domain.UserRepository
	mailer    domain.EmailSender
	publisher pubsub.Publisher
	validator *validation.Validator
	baseURL   string
	resetTTL  time.Duration
	now       func() time.Time
}

// NewService creates a Service. A nil Publisher disables events.
func NewService(deps Dependencies) *Service {
	v := deps.Validator
	if v == nil {
		v = validation.New()
	}
	ttl := deps.ResetTTL
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &Service{
		repo:      deps.Repository,
		mailer:    deps.Mailer,
		publisher: deps.Publisher,
		validator: v,
		baseURL:   strings.TrimRight(deps.BaseURL, "/"),
		resetTTL:  ttl,
		now:       time.Now,
	}
}

// Get loads a single user. A missing record is reported as domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of users ordered by email.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update validates and stores the editable attributes of a user.
// Validation failures are returned as *FormError.
func (s *Service) Update(ctx context.Context, id string, in domain.UserUpdate) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)
	if err := s.check(in); err != nil {
		return nil, err
	}
	if existing, err := s.repo.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil && existing.Key() != id {
		return nil, &FormError{Fields: map[string]string{"email": "Email is already in use"}}
	}
	return s.repo.Update(ctx, id, in)
}

// DeleteUser removes the user with the given id. The returned error's
// message is meant to be shown to the user as is.
func (s *Service) DeleteUser(ctx context.Context, id string) (*MutationResult, error) {
	// Loaded first so the event can name the address that went away.
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mutationError("delete", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, s.mutationError("delete", id, err)
	}

	slog.Info("User deleted", "user_id", id, "actor", ActorFrom(ctx))
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, Deleted, ActorFrom(ctx), UserDeleted{
			UserID:    id,
			Email:     user.Email,
			DeletedAt: s.now().UTC(),
		})
	})
	return &MutationResult{ID: id}, nil
}

// EmailUser sends the notification email to the user with the given id.
func (s *Service) EmailUser(ctx context.Context, id string) (*MutationResult, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mutationError("email", id, err)
	}
	if s.mailer == nil {
		return nil, userErrorf(nil, "Email delivery is not configured")
	}
	body, err := renderBody(notificationBody(user, s.baseURL))
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(user.Email, "A message from userdesk", body); err != nil {
		slog.Error("Failed to send user email", "user_id", id, "error", err)
		return nil, userErrorf(err, "Could not send email to user %s: %v", id, err)
	}

	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, Emailed, ActorFrom(ctx), UserEmailed{
			UserID: id,
			Email:  user.Email,
			SentAt: s.now().UTC(),
		})
	})
	return &MutationResult{ID: id}, nil
}

// SignUp creates an account with a password.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}
	user, err := s.repo.Create(ctx, &domain.User{
		Email:       in.Email,
		DisplayName: strings.TrimSpace(in.DisplayName),
	}, in.Password)
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		return nil, &FormError{Fields: map[string]string{"email": "A user with this email already exists"}}
	}
	return user, err
}

// RequestPasswordReset emails a reset link when the address belongs to an
// account. Unknown addresses are not reported, so callers always show the
// same confirmation.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if fields := validation.FieldErrors(s.validator.Validate(struct {
		Email string `form:"email" validate:"required,email"`
	}{email})); fields != nil {
		return &FormError{Fields: fields}
	}

	token, err := s.repo.GenerateResetToken(ctx, email, s.resetTTL)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("Error generating reset token", "error", err)
		}
		return nil
	}
	if s.mailer == nil {
		slog.Warn("Password reset requested but no mailer is configured")
		return nil
	}
	body, err := renderBody(resetBody(s.baseURL + routes.ResetPassword(token)))
	if err != nil {
		return err
	}
	if err := s.mailer.Send(email, "Reset Your Password", body); err != nil {
		slog.Error("Failed to send password reset email", "error", err)
	}
	return nil
}

// ResetPassword sets a new password from a reset token.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) (*domain.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	return s.repo.ResetPassword(ctx, in.Token, in.Password)
}

func (s *Service) check(in any) error {
	fields, err := s.validator.Check(in)
	if err != nil {
		return err
	}
	if fields != nil {
		return &FormError{Fields: fields}
	}
	return nil
}

func (s *Service) mutationError(op, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return NotFoundError(id)
	}
	slog.Error("User mutation failed", "op", op, "user_id", id, "error", err)
	return userErrorf(err, "Could not %s user %s: %v", op, id, err)
}

// publish runs fn when events are enabled. Event failures are logged; the
// mutation they describe has already happened.
func (s *Service) publish(ctx context.Context, fn func() error) {
	if s.publisher == nil {
		return
	}
	if err := fn(); err != nil {
		slog.WarnContext(ctx, "Failed to publish user event", "error", err)
	}
}
