package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Collections.RegisterRoutes(e, cfg)
	h.Products.RegisterRoutes(e, cfg)
	h.Orders.RegisterRoutes(e, cfg)
	h.Blobs.RegisterRoutes(e)

	//ログイン入口。未認証の/adminアクセスはここへ飛ばされる。
	e.GET("/login", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "login required"})
	})

	//管理エリア。認証済みセッションだけが到達できる。
	admin := e.Group("/admin")
	admin.Use(middleware.AdminPageGate(cfg))
	admin.GET("", adminIndex)
	admin.GET("/*", adminIndex)
}

func adminIndex(c echo.Context) error {
	username, _ := c.Get(middleware.CtxUsernameKey).(string)
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "admin area",
		"username": username,
	})
}
