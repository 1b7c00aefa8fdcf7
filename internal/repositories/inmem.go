package repositories

import (
	"context"
	"sync"
	"time"

	"webapp/internal/models"
)

// InMemoryAccountRepository is a map-backed AccountRepository used by tests
// and local development. It mirrors the postgres implementation's semantics:
// unique email, refreshed account_updated, copies on read.
type InMemoryAccountRepository struct {
	mu       sync.Mutex
	seq      int64
	accounts map[int64]*models.Account
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{accounts: make(map[int64]*models.Account)}
}

func copyAccount(a *models.Account) *models.Account {
	cp := *a
	if a.VerificationToken != nil {
		s := *a.VerificationToken
		cp.VerificationToken = &s
	}
	if a.TokenExpiresAt != nil {
		t := *a.TokenExpiresAt
		cp.TokenExpiresAt = &t
	}
	if a.ImageKey != nil {
		s := *a.ImageKey
		cp.ImageKey = &s
	}
	return &cp
}

func (r *InMemoryAccountRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return ErrDuplicateEmail
		}
	}
	r.seq++
	now := time.Now()
	account.ID = r.seq
	account.AccountCreated = now
	account.AccountUpdated = now
	r.accounts[account.ID] = copyAccount(account)
	return nil
}

func (r *InMemoryAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return copyAccount(a), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAccount(a), nil
}

func (r *InMemoryAccountRepository) UpdateProfile(ctx context.Context, id int64, upd AccountUpdate) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.FirstName != nil {
		a.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		a.LastName = *upd.LastName
	}
	if upd.PasswordHash != nil {
		a.PasswordHash = *upd.PasswordHash
	}
	a.AccountUpdated = time.Now()
	return copyAccount(a), nil
}

func (r *InMemoryAccountRepository) SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.VerificationToken = &token
	a.TokenExpiresAt = &expiresAt
	a.AccountUpdated = time.Now()
	return nil
}

func (r *InMemoryAccountRepository) MarkVerified(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.IsVerified = true
	a.VerificationToken = nil
	a.TokenExpiresAt = nil
	a.AccountUpdated = time.Now()
	return nil
}

func (r *InMemoryAccountRepository) SetImageKey(ctx context.Context, id int64, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.ImageKey = &key
	a.AccountUpdated = time.Now()
	return nil
}

func (r *InMemoryAccountRepository) ClearImageKey(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.ImageKey = nil
	a.AccountUpdated = time.Now()
	return nil
}
