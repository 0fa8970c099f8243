package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/userdesk/internal/domain"
)

// MemoryUserRepository is an in-memory domain.UserRepository for handler and
// service tests. Passwords are kept in clear text; it must never be used
// outside tests.
type MemoryUserRepository struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	passwords map[string]string

	// Err, when set, is returned by every method.
	Err error
	// DeleteCalls counts calls to Delete.
	DeleteCalls int
}

// NewMemoryUserRepository creates a repository seeded with the given users.
func NewMemoryUserRepository(users ...*domain.User) *MemoryUserRepository {
	r := &MemoryUserRepository{
		users:     make(map[string]*domain.User),
		passwords: make(map[string]string),
	}
	for _, u := range users {
		r.users[u.Key()] = u
	}
	return r
}

// SetPassword assigns a clear-text password to an existing user.
func (r *MemoryUserRepository) SetPassword(key, password string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords[key] = password
	if u, ok := r.users[key]; ok {
		u.HashedPassword = "hashed:" + password
	}
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, key string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.findByEmailLocked(email), nil
}

func (r *MemoryUserRepository) findByEmailLocked(email string) *domain.User {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied
		}
	}
	return nil
}

func (r *MemoryUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset > len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.findByEmailLocked(user.Email) != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	created := *user
	id := domain.NewUserID(uuid.NewString())
	created.ID = &id
	created.Email = strings.ToLower(strings.TrimSpace(user.Email))
	created.Salt = "salt"
	if password != "" {
		created.HashedPassword = "hashed:" + password
		r.passwords[created.Key()] = password
	}
	r.users[created.Key()] = &created
	out := created
	return &out, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, key string, update domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.DisplayName = update.DisplayName
	u.Email = strings.ToLower(strings.TrimSpace(update.Email))
	u.AvatarURL = update.AvatarURL
	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DeleteCalls++
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, key)
	delete(r.passwords, key)
	return nil
}

func (r *MemoryUserRepository) CheckCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u := r.findByEmailLocked(email)
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}
	stored, ok := r.passwords[u.Key()]
	if !ok || stored == "" {
		return nil, domain.ErrPasswordNotSet
	}
	if stored != password {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (r *MemoryUserRepository) GenerateResetToken(ctx context.Context, email string, ttl time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	found := r.findByEmailLocked(email)
	if found == nil {
		return "", domain.ErrNotFound
	}
	u := r.users[found.Key()]
	token := uuid.NewString()
	expires := time.Now().UTC().Add(ttl).Format(time.RFC3339)
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expires
	return token, nil
}

func (r *MemoryUserRepository) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for key, u := range r.users {
		if u.ResetTokenValue() != token || token == "" {
			continue
		}
		if exp := u.ResetTokenExpiry(); exp == nil || exp.Before(time.Now()) {
			return nil, domain.ErrInvalidResetToken
		}
		u.ResetToken = nil
		u.ResetTokenExpiresAt = nil
		u.HashedPassword = "hashed:" + newPassword
		r.passwords[key] = newPassword
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrInvalidResetToken
}

var _ domain.UserRepository = (*MemoryUserRepository)(nil)
