package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"webapp/internal/models"
	"webapp/internal/notify"
	"webapp/internal/repositories"
	"webapp/internal/validation"
)

// RegisterRequest carries the four mandatory registration fields.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdate carries the optional fields of PUT /v1/user/self. Email is
// decoded so its mere presence can be rejected.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
	Email     *string
}

// AccountService drives the account lifecycle: registration, verification,
// authentication and profile updates. Verification is monotonic; nothing here
// ever flips an account back to unverified.
type AccountService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.Account, error)
	IssueVerificationToken(ctx context.Context, email string) (string, time.Time, error)
	ConfirmVerification(ctx context.Context, email, token string) error
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	GetProfile(account *models.Account) (*models.PublicAccount, error)
	UpdateProfile(ctx context.Context, account *models.Account, upd ProfileUpdate) (*models.Account, error)
}

type accountService struct {
	repo     repositories.AccountRepository
	notifier notify.Notifier
	tokenTTL time.Duration
}

func NewAccountService(repo repositories.AccountRepository, notifier notify.Notifier, tokenTTL time.Duration) AccountService {
	return &accountService{
		repo:     repo,
		notifier: notifier,
		tokenTTL: tokenTTL,
	}
}

func (s *accountService) Register(ctx context.Context, req RegisterRequest) (*models.Account, error) {
	// field order matters: the first failing field is the one reported
	if err := validation.Email(req.Email); err != nil {
		return nil, err
	}
	if err := validation.Password(req.Password); err != nil {
		return nil, err
	}
	if err := validation.Name(req.FirstName); err != nil {
		return nil, err
	}
	if err := validation.Name(req.LastName); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issueToken(ctx, account)
	if err != nil {
		// the account exists; a fresh token can still be issued later
		logrus.WithError(err).WithField("email", account.Email).
			Warn("registration: could not issue verification token")
		return account, nil
	}

	if s.notifier != nil {
		go func() {
			if err := s.notifier.SendVerification(context.Background(), account.Email, token, expiresAt); err != nil {
				logrus.WithError(err).WithField("email", account.Email).
					Warn("verification notification failed")
			}
		}()
	}
	return account, nil
}

func (s *accountService) IssueVerificationToken(ctx context.Context, email string) (string, time.Time, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, err
	}
	// a verified account must never carry a token again
	if account.IsVerified {
		return "", time.Time{}, ErrAlreadyVerified
	}
	token, expiresAt, err := s.issueToken(ctx, account)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// issueToken generates a fresh opaque token, overwriting any outstanding one.
func (s *accountService) issueToken(ctx context.Context, account *models.Account) (string, time.Time, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.tokenTTL)
	if err := s.repo.SetVerificationToken(ctx, account.ID, token, expiresAt); err != nil {
		return "", time.Time{}, err
	}
	account.VerificationToken = &token
	account.TokenExpiresAt = &expiresAt
	return token, expiresAt, nil
}

func (s *accountService) ConfirmVerification(ctx context.Context, email, token string) error {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	// a cleared token also covers replay after a successful confirmation
	if account.VerificationToken == nil || account.TokenExpiresAt == nil {
		return ErrTokenMismatch
	}
	if subtle.ConstantTimeCompare([]byte(*account.VerificationToken), []byte(token)) != 1 {
		return ErrTokenMismatch
	}
	if time.Now().After(*account.TokenExpiresAt) {
		return ErrTokenExpired
	}
	return s.repo.MarkVerified(ctx, account.ID)
}

// dummyHash keeps the missing-account path as expensive as the mismatch path.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4mZ5kS0iG3e1j6N0C5a9a9a9a9a")

func (s *accountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		// store failures are not a credentials problem
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (s *accountService) GetProfile(account *models.Account) (*models.PublicAccount, error) {
	if !account.IsVerified {
		return nil, ErrNotVerified
	}
	return account.Public(), nil
}

func (s *accountService) UpdateProfile(ctx context.Context, account *models.Account, upd ProfileUpdate) (*models.Account, error) {
	if !account.IsVerified {
		return nil, ErrNotVerified
	}
	if upd.Email != nil {
		return nil, ErrEmailImmutable
	}
	if upd.FirstName == nil && upd.LastName == nil && upd.Password == nil {
		return nil, ErrNoFields
	}

	if upd.FirstName != nil {
		if err := validation.Name(*upd.FirstName); err != nil {
			return nil, err
		}
	}
	if upd.LastName != nil {
		if err := validation.Name(*upd.LastName); err != nil {
			return nil, err
		}
	}

	fields := repositories.AccountUpdate{
		FirstName: upd.FirstName,
		LastName:  upd.LastName,
	}
	if upd.Password != nil {
		if err := validation.Password(*upd.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		fields.PasswordHash = &h
	}
	return s.repo.UpdateProfile(ctx, account.ID, fields)
}
