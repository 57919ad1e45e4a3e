package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/repository"
)

type AuthUsecase struct {
	cfg   config.Config
	users repository.UserRepository
	now   func() time.Time
}

// DI
func NewAuthUsecase(cfg config.Config, users repository.UserRepository) *AuthUsecase {
	return &AuthUsecase{
		cfg:   cfg,
		users: users,
		now:   time.Now,
	}
}

type LoginInput struct {
	Username string
	Code     string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// Loginはユーザー名とワンタイムコードを検証してセッショントークンを発行する。
// 「ユーザーが存在しない」と「コード不一致」は同じ401にする（列挙対策）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	code := strings.TrimSpace(in.Code)

	if username == "" || code == "" {
		return LoginResult{}, NewHTTPError(http.StatusBadRequest, "missing username or code")
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if !VerifyTOTP(code, user.TOTPSecret, u.now()) {
		return LoginResult{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := IssueSession(u.cfg.JWTSecret, user, u.now())
	if err != nil {
		return LoginResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}
