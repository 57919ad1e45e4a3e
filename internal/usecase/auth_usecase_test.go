package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	panic("not used in AuthUsecase tests")
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", GoEnv: "dev"}
}

func newTOTPSecret(t *testing.T) string {
	t.Helper()
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: "admin"})
	if err != nil {
		t.Fatalf("totp.Generate failed: %v", err)
	}
	return key.Secret()
}

func codeAt(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, at)
	if err != nil {
		t.Fatalf("totp.GenerateCode failed: %v", err)
	}
	return code
}

// =====================
// TOTP
// =====================

func TestVerifyTOTP_AcceptsOneStepDrift(t *testing.T) {
	secret := newTOTPSecret(t)
	//30秒ステップ境界に揃えた固定時刻
	now := time.Unix(30*56666700, 0)

	assert.True(t, VerifyTOTP(codeAt(t, secret, now), secret, now))
	assert.True(t, VerifyTOTP(codeAt(t, secret, now.Add(-30*time.Second)), secret, now))
	assert.True(t, VerifyTOTP(codeAt(t, secret, now.Add(30*time.Second)), secret, now))
}

func TestVerifyTOTP_RejectsTwoStepsAway(t *testing.T) {
	secret := newTOTPSecret(t)
	now := time.Unix(30*56666700, 0)

	assert.False(t, VerifyTOTP(codeAt(t, secret, now.Add(-60*time.Second)), secret, now))
	assert.False(t, VerifyTOTP(codeAt(t, secret, now.Add(60*time.Second)), secret, now))
}

func TestVerifyTOTP_FailsClosed(t *testing.T) {
	secret := newTOTPSecret(t)
	now := time.Unix(30*56666700, 0)

	assert.False(t, VerifyTOTP("000000", secret, now))
	assert.False(t, VerifyTOTP("abcdef", secret, now))
	assert.False(t, VerifyTOTP("", secret, now))
	//壊れたシークレットでもpanicせずfalse
	assert.False(t, VerifyTOTP("123456", "!!not-base32!!", now))
}

// =====================
// Session
// =====================

func TestSession_VerifyIsIdempotentUntilExpiry(t *testing.T) {
	user := model.User{ID: 1, Username: "admin"}

	token, expiresAt, err := IssueSession("test-secret", user, time.Now())
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), expiresAt, 5*time.Second)

	first := VerifySession("test-secret", token)
	second := VerifySession("test-secret", token)
	if assert.NotNil(t, first) && assert.NotNil(t, second) {
		assert.Equal(t, *first, *second)
		assert.Equal(t, int64(1), first.UserID)
		assert.Equal(t, "admin", first.Username)
	}
}

func TestSession_ExpiredTokenReturnsNil(t *testing.T) {
	user := model.User{ID: 1, Username: "admin"}

	//2時間前に発行したトークンは期限切れ
	token, _, err := IssueSession("test-secret", user, time.Now().Add(-2*time.Hour))
	assert.NoError(t, err)
	assert.Nil(t, VerifySession("test-secret", token))
}

func TestSession_TamperedTokenReturnsNil(t *testing.T) {
	user := model.User{ID: 1, Username: "admin"}

	token, _, err := IssueSession("test-secret", user, time.Now())
	assert.NoError(t, err)

	assert.Nil(t, VerifySession("wrong-secret", token))
	assert.Nil(t, VerifySession("test-secret", token+"x"))
	assert.Nil(t, VerifySession("test-secret", "not-a-token"))
	assert.Nil(t, VerifySession("test-secret", ""))
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_Success(t *testing.T) {
	secret := newTOTPSecret(t)
	now := time.Unix(30*56666700, 0)

	users := new(userRepoMock)
	users.On("FindByUsername", mock.Anything, "admin").Return(model.User{
		ID: 1, Username: "admin", TOTPSecret: secret,
	}, nil)

	uc := NewAuthUsecase(testConfig(), users)
	uc.now = func() time.Time { return now }

	res, err := uc.Login(context.Background(), LoginInput{
		Username: "admin",
		Code:     codeAt(t, secret, now),
	})
	assert.NoError(t, err)

	claims := VerifySession("test-secret", res.Token)
	if assert.NotNil(t, claims) {
		assert.Equal(t, int64(1), claims.UserID)
		assert.Equal(t, "admin", claims.Username)
	}
}

func TestAuthUsecase_Login_MissingFields(t *testing.T) {
	uc := NewAuthUsecase(testConfig(), new(userRepoMock))

	_, err := uc.Login(context.Background(), LoginInput{Username: "admin"})
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}

	_, err = uc.Login(context.Background(), LoginInput{Code: "123456"})
	he, ok = AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
}

// 未知ユーザーとコード不一致が同じレスポンスになること（列挙対策）
func TestAuthUsecase_Login_UniformUnauthorized(t *testing.T) {
	secret := newTOTPSecret(t)
	now := time.Unix(30*56666700, 0)

	users := new(userRepoMock)
	users.On("FindByUsername", mock.Anything, "ghost").Return(model.User{}, repo.ErrNotFound)
	users.On("FindByUsername", mock.Anything, "admin").Return(model.User{
		ID: 1, Username: "admin", TOTPSecret: secret,
	}, nil)

	uc := NewAuthUsecase(testConfig(), users)
	uc.now = func() time.Time { return now }

	_, errUnknownUser := uc.Login(context.Background(), LoginInput{Username: "ghost", Code: "123456"})
	_, errBadCode := uc.Login(context.Background(), LoginInput{Username: "admin", Code: "000000"})

	heUser, ok := AsHTTPError(errUnknownUser)
	assert.True(t, ok)
	heCode, ok := AsHTTPError(errBadCode)
	assert.True(t, ok)

	assert.Equal(t, http.StatusUnauthorized, heUser.Status)
	assert.Equal(t, http.StatusUnauthorized, heCode.Status)
	assert.Equal(t, heUser.Message, heCode.Message)
}
