package usecase

import (
	"errors"
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

// セッショントークンの有効期限
const SessionTTL = 1 * time.Hour

type SessionClaims struct {
	UserID   int64
	Username string
}

// IssueSessionはHS256署名のセッショントークンを発行する。
func IssueSession(secret string, user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(SessionTTL)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// VerifySessionは署名と期限を検証する。失敗はすべてnil（未認証扱い）。
func VerifySession(secret string, rawToken string) *SessionClaims {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil
	}

	return &SessionClaims{
		UserID:   int64(sub),
		Username: username,
	}
}
