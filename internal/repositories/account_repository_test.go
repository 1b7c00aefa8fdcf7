package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webapp/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func accountRows(a *models.Account) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name",
		"account_created", "account_updated",
		"is_verified", "verification_token", "token_expires_at", "image_key",
	})
	var token, imageKey any
	var expires any
	if a.VerificationToken != nil {
		token = *a.VerificationToken
	}
	if a.TokenExpiresAt != nil {
		expires = *a.TokenExpiresAt
	}
	if a.ImageKey != nil {
		imageKey = *a.ImageKey
	}
	rows.AddRow(a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.AccountCreated, a.AccountUpdated, a.IsVerified, token, expires, imageKey)
	return rows
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("jane@example.com", "hash", "Jane", "Doe").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_created", "account_updated"}).
			AddRow(int64(7), now, now))

	a := &models.Account{Email: "jane@example.com", PasswordHash: "hash", FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, now, a.AccountCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pq.Error{Code: "23505"})

	a := &models.Account{Email: "jane@example.com", PasswordHash: "hash", FirstName: "Jane", LastName: "Doe"}
	err := repo.Create(context.Background(), a)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	token := "tok"
	expires := time.Now().Add(2 * time.Minute)
	stored := &models.Account{
		ID: 3, Email: "jane@example.com", PasswordHash: "hash",
		FirstName: "Jane", LastName: "Doe",
		AccountCreated: time.Now(), AccountUpdated: time.Now(),
		VerificationToken: &token, TokenExpiresAt: &expires,
	}
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs("jane@example.com").
		WillReturnRows(accountRows(stored))

	got, err := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	require.NotNil(t, got.VerificationToken)
	assert.Equal(t, "tok", *got.VerificationToken)
	assert.Nil(t, got.ImageKey)
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile_OnlyPresentFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	stored := &models.Account{
		ID: 3, Email: "jane@example.com", PasswordHash: "newhash",
		FirstName: "Janet", LastName: "Doe",
		AccountCreated: time.Now(), AccountUpdated: time.Now(), IsVerified: true,
	}
	mock.ExpectQuery(`UPDATE accounts SET account_updated = NOW\(\), first_name = \$1, password_hash = \$2 WHERE id = \$3`).
		WithArgs("Janet", "newhash", int64(3)).
		WillReturnRows(accountRows(stored))

	first := "Janet"
	hash := "newhash"
	got, err := repo.UpdateProfile(context.Background(), 3, AccountUpdate{FirstName: &first, PasswordHash: &hash})
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified_ClearsToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkVerified(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified_MissingAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkVerified(context.Background(), 99), ErrNotFound)
}

func TestSetVerificationToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	expires := time.Now().Add(2 * time.Minute)
	mock.ExpectExec("UPDATE accounts").
		WithArgs("tok", expires, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetVerificationToken(context.Background(), 3, "tok", expires))
	assert.NoError(t, mock.ExpectationsWereMet())
}
