package middleware

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	//セッションcookie名
	SessionCookieName = "admin_session"

	CtxUserIDKey   = "user_id"  // int64
	CtxUsernameKey = "username" // string
)

// AdminSessionはcookieのセッショントークンを検証するAPI向けガード。
// 失敗はすべて一律401。
func AdminSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := sessionClaims(c, cfg)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUsernameKey, claims.Username)

			return next(c)
		}
	}
}

// AdminPageGateは/admin配下のページ向けガード。未認証は/loginへリダイレクト。
func AdminPageGate(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := sessionClaims(c, cfg)
			if claims == nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUsernameKey, claims.Username)

			return next(c)
		}
	}
}

// cookieを取り出して検証する。失敗はnil。
func sessionClaims(c echo.Context, cfg config.Config) *usecase.SessionClaims {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return usecase.VerifySession(cfg.JWTSecret, cookie.Value)
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
