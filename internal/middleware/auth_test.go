package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webapp/internal/models"
	"webapp/internal/services"
)

type stubAccounts struct {
	account *models.Account
	err     error
}

func (s *stubAccounts) Register(ctx context.Context, req services.RegisterRequest) (*models.Account, error) {
	return nil, nil
}

func (s *stubAccounts) IssueVerificationToken(ctx context.Context, email string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s *stubAccounts) ConfirmVerification(ctx context.Context, email, token string) error {
	return nil
}

func (s *stubAccounts) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	return s.account, s.err
}

func (s *stubAccounts) GetProfile(account *models.Account) (*models.PublicAccount, error) {
	return account.Public(), nil
}

func (s *stubAccounts) UpdateProfile(ctx context.Context, account *models.Account, upd services.ProfileUpdate) (*models.Account, error) {
	return account, nil
}

func newAuthRouter(accounts services.AccountService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", BasicAuth(accounts), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, withCreds bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if withCreds {
		req.SetBasicAuth("jane.doe@example.com", "Str0ng!pass")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBasicAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter(&stubAccounts{})
	w := doAuthRequest(t, r, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

func TestBasicAuth_BadCredentials(t *testing.T) {
	r := newAuthRouter(&stubAccounts{err: services.ErrInvalidCredentials})
	w := doAuthRequest(t, r, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

func TestBasicAuth_StoreFailureIsNot401(t *testing.T) {
	r := newAuthRouter(&stubAccounts{err: errors.New("connection refused")})
	w := doAuthRequest(t, r, true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
}

func TestBasicAuth_Success(t *testing.T) {
	r := newAuthRouter(&stubAccounts{account: &models.Account{ID: 1, IsVerified: true}})
	w := doAuthRequest(t, r, true)
	require.Equal(t, http.StatusOK, w.Code)
}
