package handler

import (
	"net/http"

	"scm/internal/config"
	"scm/internal/middleware"
	"scm/internal/repository"
	"scm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /pengiriman（配送状況と地図ピン）
type ShipmentHandler struct {
	repos repository.ScopedRepos
}

// DI
func NewShipmentHandler(repos repository.ScopedRepos) *ShipmentHandler {
	return &ShipmentHandler{repos: repos}
}

func (h *ShipmentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/pengiriman", h.list, middleware.TabOrigin(), middleware.AuthJWT(cfg))
}

func (h *ShipmentHandler) list(c echo.Context) error {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	uc := usecase.NewShipmentUsecase(h.repos.Orders(scope))
	return c.JSON(http.StatusOK, uc.List(c.Request().Context(), c.QueryParam("q")))
}
