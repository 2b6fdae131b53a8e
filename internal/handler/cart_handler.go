package handler

import (
	"net/http"
	"strconv"

	"scm/internal/config"
	"scm/internal/middleware"
	"scm/internal/repository"
	"scm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	repos    repository.ScopedRepos
	products *usecase.ProductUsecase
}

// DI
func NewCartHandler(repos repository.ScopedRepos, products *usecase.ProductUsecase) *CartHandler {
	return &CartHandler{repos: repos, products: products}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"qty"` // 0 は 1 扱い
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"qty"`
}

// /cart, /cart/{id} を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.TabOrigin())
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("", h.clearCart)
	g.PATCH("/:id", h.patchItem)
	g.DELETE("/:id", h.deleteItem)
}

// 保存済みのカートを読み込んだ CartManager
func (h *CartHandler) loadCart(c echo.Context) (*usecase.CartManager, bool) {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return nil, false
	}
	m := usecase.NewCartManager(h.repos.Carts(scope))
	m.Reload(c.Request().Context())
	return m, true
}

func (h *CartHandler) getCart(c echo.Context) error {
	m, ok := h.loadCart(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, m.View())
}

func (h *CartHandler) addToCart(c echo.Context) error {
	m, ok := h.loadCart(c)
	if !ok {
		return unauthorized(c)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid qty"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, found := h.products.Find(req.ProductID)
	if !found {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
	}

	m.AddOrIncrement(c.Request().Context(), p, req.Quantity)
	return c.JSON(http.StatusOK, m.View())
}

func (h *CartHandler) patchItem(c echo.Context) error {
	m, ok := h.loadCart(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//1未満は1に丸める
	m.SetQuantity(c.Request().Context(), itemID, req.Quantity)
	return c.JSON(http.StatusOK, m.View())
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	m, ok := h.loadCart(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	m.Remove(c.Request().Context(), itemID)
	return c.JSON(http.StatusOK, m.View())
}

func (h *CartHandler) clearCart(c echo.Context) error {
	m, ok := h.loadCart(c)
	if !ok {
		return unauthorized(c)
	}

	m.Clear(c.Request().Context())
	return c.JSON(http.StatusOK, m.View())
}
