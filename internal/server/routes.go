package server

import (
	"net/http"

	"scm/internal/config"
	"scm/internal/handler"

	"github.com/labstack/echo/v4"
)

// Handlers は登録するHTTPハンドラ一式。
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Report   *handler.ReportHandler
	Shipment *handler.ShipmentHandler
	Events   *handler.EventsHandler // nil なら /events なし
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開
	h.Product.RegisterRoutes(e)

	//要JWT
	h.Cart.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Report.RegisterRoutes(e, cfg)
	h.Shipment.RegisterRoutes(e, cfg)
	if h.Events != nil {
		h.Events.RegisterRoutes(e, cfg)
	}
}
