package server

import (
	"grocery/internal/config"
	"grocery/internal/handler"

	"github.com/labstack/echo/v4"
)

// 全ハンドラを登録してechoを起動する
func Start(
	cfg config.Config,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	customerH *handler.CustomerHandler,
	orderH *handler.OrderHandler,
	adminProductH *handler.AdminProductHandler,
	adminOrderH *handler.AdminOrderHandler,
) error {
	e := echo.New()
	e.HideBanner = true

	authH.RegisterRoutes(e)
	productH.RegisterRoutes(e)
	customerH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	adminProductH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)

	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
