package database

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nfrund/userdesk/internal/config"
	"github.com/nfrund/userdesk/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// UserStore implements domain.UserRepository on SurrealDB. Password hashing
// and comparison run inside the database (crypto::argon2).
type UserStore struct {
	db             *surrealdb.DB
	queryTimeout   time.Duration
	executeTimeout time.Duration
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *surrealdb.DB, cfg config.Provider) *UserStore {
	return &UserStore{
		db:             db,
		queryTimeout:   cfg.GetDBQueryTimeout(),
		executeTimeout: cfg.GetDBExecuteTimeout(),
	}
}

func (s *UserStore) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return getTimeoutFromContext(ctx, s.queryTimeout, ContextKeyQueryTimeout)
}

func (s *UserStore) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return getTimeoutFromContext(ctx, s.executeTimeout, ContextKeyExecuteTimeout)
}

// FindByID retrieves a user by the key part of its record id.
// It returns domain.ErrNotFound when no record exists.
func (s *UserStore) FindByID(ctx context.Context, key string) (*domain.User, error) {
	if key == "" {
		return nil, NewDBError(ErrInvalidInput, "id cannot be empty")
	}
	ctx, cancel := s.readCtx(ctx)
	defer cancel()

	user, err := QueryOne[domain.User](ctx, s.db,
		"SELECT * FROM type::thing($table, $key)",
		map[string]any{"table": domain.UserTable, "key": key})
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", key, err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// FindByEmail queries for a single user by their email address.
// It returns nil, nil when nobody uses the address.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := s.readCtx(ctx)
	defer cancel()

	user, err := QueryOne[domain.User](ctx, s.db,
		"SELECT * FROM user WHERE email = $email",
		map[string]any{"email": normalizeEmail(email)})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return user, nil
}

// List returns a page of users ordered by email.
func (s *UserStore) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := s.readCtx(ctx)
	defer cancel()

	rows, err := Query[domain.User](ctx, s.db,
		"SELECT * FROM user ORDER BY email ASC LIMIT $limit START $offset",
		map[string]any{"limit": limit, "offset": offset})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, &rows[i])
	}
	return users, nil
}

// Create inserts a new user. An empty password creates an account that
// cannot log in until a password is set through the reset flow.
func (s *UserStore) Create(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user == nil || strings.TrimSpace(user.Email) == "" {
		return nil, NewDBError(ErrInvalidInput, "email is required")
	}
	existing, err := s.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	salt, err := generateSecureToken(16)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.writeCtx(ctx)
	defer cancel()

	query := `
		CREATE user SET
			email = $email,
			displayName = $displayName,
			avatarUrl = $avatarUrl,
			salt = $salt,
			hashedPassword = ""`
	if password != "" {
		query = `
		CREATE user SET
			email = $email,
			displayName = $displayName,
			avatarUrl = $avatarUrl,
			salt = $salt,
			hashedPassword = crypto::argon2::generate($password + $salt)`
	}
	params := map[string]any{
		"email":       normalizeEmail(user.Email),
		"displayName": user.DisplayName,
		"avatarUrl":   user.AvatarURL,
		"salt":        salt,
		"password":    password,
	}

	created, err := QueryOne[domain.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "create returned no record")
	}
	slog.Info("Created user", "user_id", created.Key(), "email", created.Email)
	return created, nil
}

// Update merges the editable attributes into an existing user.
func (s *UserStore) Update(ctx context.Context, key string, update domain.UserUpdate) (*domain.User, error) {
	if _, err := s.FindByID(ctx, key); err != nil {
		return nil, err
	}
	ctx, cancel := s.writeCtx(ctx)
	defer cancel()

	update.Email = normalizeEmail(update.Email)
	updated, err := QueryOne[domain.User](ctx, s.db,
		"UPDATE type::thing($table, $key) MERGE $data RETURN AFTER",
		map[string]any{"table": domain.UserTable, "key": key, "data": update})
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", key, err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// Delete removes a user record. It returns domain.ErrNotFound when there was
// nothing to delete.
func (s *UserStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return NewDBError(ErrInvalidInput, "id cannot be empty")
	}
	ctx, cancel := s.writeCtx(ctx)
	defer cancel()

	// RETURN BEFORE yields the deleted row, which tells us whether it existed.
	deleted, err := QueryOne[domain.User](ctx, s.db,
		"DELETE type::thing($table, $key) RETURN BEFORE",
		map[string]any{"table": domain.UserTable, "key": key})
	if err != nil {
		return fmt.Errorf("delete user %s: %w", key, err)
	}
	if deleted == nil {
		return domain.ErrNotFound
	}
	return nil
}

// CheckCredentials verifies a password against the stored hash.
func (s *UserStore) CheckCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.HashedPassword == "" {
		return nil, domain.ErrPasswordNotSet
	}

	ctx, cancel := s.readCtx(ctx)
	defer cancel()

	matched, err := QueryOne[domain.User](ctx, s.db,
		"SELECT * FROM user WHERE email = $email AND crypto::argon2::compare(hashedPassword, $password + salt)",
		map[string]any{"email": normalizeEmail(email), "password": password})
	if err != nil {
		return nil, fmt.Errorf("credential check failed: %w", err)
	}
	if matched == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return matched, nil
}

// GenerateResetToken creates a secure reset token and sets its expiration.
// The expiry is written as an RFC3339 string produced by Go, which avoids
// datetime parsing differences between SurrealDB versions.
func (s *UserStore) GenerateResetToken(ctx context.Context, email string, ttl time.Duration) (string, error) {
	token, err := generateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	expires := time.Now().UTC().Add(ttl).Format(time.RFC3339)

	ctx, cancel := s.writeCtx(ctx)
	defer cancel()

	updated, err := QueryOne[domain.User](ctx, s.db,
		"UPDATE user SET resetToken = $reset_token, resetTokenExpiresAt = $expires WHERE email = $email RETURN AFTER",
		map[string]any{
			"email":       normalizeEmail(email),
			"reset_token": token,
			"expires":     expires,
		})
	if err != nil {
		return "", fmt.Errorf("failed to update user with reset token: %w", err)
	}
	if updated == nil {
		return "", domain.ErrNotFound
	}
	return token, nil
}

// ResetPassword performs an atomic password reset and invalidation of the token.
func (s *UserStore) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	if token == "" || newPassword == "" {
		return nil, NewDBError(ErrInvalidInput, "token and password are required")
	}
	ctx, cancel := s.writeCtx(ctx)
	defer cancel()

	user, err := QueryOne[domain.User](ctx, s.db, `
		UPDATE user SET
			hashedPassword = crypto::argon2::generate($password + salt),
			resetToken = NONE,
			resetTokenExpiresAt = NONE
		WHERE resetToken = $target_token AND type::datetime(resetTokenExpiresAt) > time::now()
		RETURN AFTER`,
		map[string]any{"target_token": token, "password": newPassword})
	if err != nil {
		return nil, fmt.Errorf("database error during password reset: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidResetToken
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateSecureToken creates a cryptographically secure random token.
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
