package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Collections *handler.CollectionHandler
	Products    *handler.ProductHandler
	Orders      *handler.OrderHandler
	Blobs       *handler.BlobHandler
}

// Newはechoを組み立ててルートを登録する。
func New(cfg config.Config, logger zerolog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogging(logger))

	registerRoutes(e, cfg, h)

	return e
}
