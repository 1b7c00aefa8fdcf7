package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"webapp/internal/models"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when the unique email constraint fires.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountUpdate carries the optional profile fields of an update. A nil
// pointer means "leave unchanged".
type AccountUpdate struct {
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// UpdateProfile applies the non-nil fields and refreshes account_updated.
	UpdateProfile(ctx context.Context, id int64, upd AccountUpdate) (*models.Account, error)

	// verification helpers
	SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id int64) error

	// picture helpers
	SetImageKey(ctx context.Context, id int64, key string) error
	ClearImageKey(ctx context.Context, id int64) error
}

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{DB: db}
}

const accountColumns = `
	id, email, password_hash, first_name, last_name,
	account_created, account_updated,
	is_verified, verification_token, token_expires_at, image_key
`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var (
		token    sql.NullString
		expires  sql.NullTime
		imageKey sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.AccountCreated, &a.AccountUpdated,
		&a.IsVerified, &token, &expires, &imageKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("account scan: %w", err)
	}
	if token.Valid {
		s := token.String
		a.VerificationToken = &s
	}
	if expires.Valid {
		t := expires.Time
		a.TokenExpiresAt = &t
	}
	if imageKey.Valid {
		s := imageKey.String
		a.ImageKey = &s
	}
	return a, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	const q = `
		INSERT INTO accounts (email, password_hash, first_name, last_name, is_verified)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, account_created, account_updated
	`
	err := r.DB.QueryRowContext(ctx, q,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
	).Scan(&account.ID, &account.AccountCreated, &account.AccountUpdated)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("account create: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(r.DB.QueryRowContext(ctx, q, email))
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.DB.QueryRowContext(ctx, q, id))
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id int64, upd AccountUpdate) (*models.Account, error) {
	sets := []string{"account_updated = NOW()"}
	args := []any{}
	n := 1
	if upd.FirstName != nil {
		sets = append(sets, fmt.Sprintf("first_name = $%d", n))
		args = append(args, *upd.FirstName)
		n++
	}
	if upd.LastName != nil {
		sets = append(sets, fmt.Sprintf("last_name = $%d", n))
		args = append(args, *upd.LastName)
		n++
	}
	if upd.PasswordHash != nil {
		sets = append(sets, fmt.Sprintf("password_hash = $%d", n))
		args = append(args, *upd.PasswordHash)
		n++
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE accounts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), n, accountColumns)
	return scanAccount(r.DB.QueryRowContext(ctx, q, args...))
}

func (r *accountRepository) SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	const q = `
		UPDATE accounts
		SET verification_token = $1, token_expires_at = $2, account_updated = NOW()
		WHERE id = $3
	`
	return r.exec(ctx, q, token, expiresAt, id)
}

func (r *accountRepository) MarkVerified(ctx context.Context, id int64) error {
	const q = `
		UPDATE accounts
		SET is_verified = TRUE, verification_token = NULL, token_expires_at = NULL,
		    account_updated = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, q, id)
}

func (r *accountRepository) SetImageKey(ctx context.Context, id int64, key string) error {
	const q = `UPDATE accounts SET image_key = $1, account_updated = NOW() WHERE id = $2`
	return r.exec(ctx, q, key, id)
}

func (r *accountRepository) ClearImageKey(ctx context.Context, id int64) error {
	const q = `UPDATE accounts SET image_key = NULL, account_updated = NOW() WHERE id = $1`
	return r.exec(ctx, q, id)
}

func (r *accountRepository) exec(ctx context.Context, q string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("account update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("account update: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
