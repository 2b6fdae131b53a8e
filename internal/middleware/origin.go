package middleware

import (
	"net/http"
	"strings"

	"scm/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderTabID = "X-Tab-ID"

// TabOrigin は X-Tab-ID を書き込み元IDとして request context に入れる。
// 無ければ uuid を振ってレスポンスヘッダで返す。
func TabOrigin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := strings.TrimSpace(c.Request().Header.Get(HeaderTabID))
			if origin == "" {
				origin = uuid.NewString()
			}
			c.Response().Header().Set(HeaderTabID, origin)

			req := c.Request()
			c.SetRequest(req.WithContext(repository.WithOrigin(req.Context(), origin)))
			c.Set(CtxOriginKey, origin)

			return next(c)
		}
	}
}

func OriginFrom(c echo.Context) string {
	s, _ := c.Get(CtxOriginKey).(string)
	return s
}

// RequireTabID は X-Tab-ID が無いリクエストを 400 で弾く。
// タブごとに状態を持つルート用（TabOrigin より前に置く）。
func RequireTabID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.TrimSpace(c.Request().Header.Get(HeaderTabID)) == "" {
				return c.JSON(http.StatusBadRequest, errorJSON("X-Tab-ID required"))
			}
			return next(c)
		}
	}
}
