package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"scm/internal/config"
	"scm/internal/domain/model"
	"scm/internal/middleware"
	"scm/internal/repository"
	"scm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /laporan（注文レポート）のHTTP
type ReportHandler struct {
	repos     repository.ScopedRepos
	delimiter rune
}

// DI
func NewReportHandler(repos repository.ScopedRepos, delimiter rune) *ReportHandler {
	if delimiter == 0 {
		delimiter = ','
	}
	return &ReportHandler{repos: repos, delimiter: delimiter}
}

// nil の項目は変更しない
type UpdateOrderRequest struct {
	BuyerName *string `json:"buyer_name"`
	Contact   *string `json:"contact"`
	Location  *string `json:"location"`
	Date      *string `json:"date"`
	Status    *string `json:"status"`
}

type MutationResponse struct {
	Success bool `json:"success"`
	Found   bool `json:"found"`
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/laporan")
	g.Use(middleware.TabOrigin())
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.GET("/summary", h.summary)
	g.GET("/export", h.export)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *ReportHandler) reportUsecase(c echo.Context) (*usecase.ReportUsecase, bool) {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return nil, false
	}
	return usecase.NewReportUsecase(h.repos.Orders(scope)), true
}

func filterFromQuery(c echo.Context) usecase.ReportFilter {
	return usecase.ReportFilter{
		Text:   c.QueryParam("q"),
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
		Status: c.QueryParam("status"),
	}
}

func (h *ReportHandler) list(c echo.Context) error {
	uc, ok := h.reportUsecase(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := uc.List(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) summary(c echo.Context) error {
	uc, ok := h.reportUsecase(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, uc.Summary(c.Request().Context()))
}

func (h *ReportHandler) update(c echo.Context) error {
	uc, ok := h.reportUsecase(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	patch := usecase.OrderPatch{
		BuyerName: req.BuyerName,
		Contact:   req.Contact,
		Location:  req.Location,
		Date:      req.Date,
	}
	if req.Status != nil {
		s := model.OrderStatus(*req.Status)
		patch.Status = &s
	}

	found, err := uc.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MutationResponse{Success: true, Found: found})
}

func (h *ReportHandler) delete(c echo.Context) error {
	uc, ok := h.reportUsecase(c)
	if !ok {
		return unauthorized(c)
	}

	found, err := uc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MutationResponse{Success: true, Found: found})
}

// CSVダウンロード（?delimiter= で区切り文字を変更）
func (h *ReportHandler) export(c echo.Context) error {
	uc, ok := h.reportUsecase(c)
	if !ok {
		return unauthorized(c)
	}

	delimiter := h.delimiter
	if v := c.QueryParam("delimiter"); v != "" {
		r := []rune(v)
		if len(r) != 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid delimiter"})
		}
		delimiter = r[0]
	}

	var buf bytes.Buffer
	if err := uc.Export(c.Request().Context(), &buf, filterFromQuery(c), delimiter); err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("laporan-%s.csv", time.Now().Format(model.DateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
