package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"scm/internal/config"
	"scm/internal/handler"
	"scm/internal/infra/localstore"
	"scm/internal/infra/storage"
	"scm/internal/logger"
	"scm/internal/middleware"
	"scm/internal/server"
	"scm/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// 2026-10-14 09:30 UTC
var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type testApp struct {
	e     *echo.Echo
	mem   *storage.MemoryStorage
	repos *localstore.Factory
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithClock(t, usecase.FixedClock{T: fixedNow})
}

func newTestAppWithClock(t *testing.T, clock usecase.Clock) *testApp {
	t.Helper()

	cfg := config.Config{JWTSecret: testSecret, ExportDelimiter: ","}
	log := logger.Discard()

	mem := storage.NewMemoryStorage()
	repos := localstore.NewFactory(mem, log)
	productUC := usecase.NewProductUsecase(nil)

	e := server.New(cfg, log, server.Handlers{
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(repos, productUC),
		Checkout: handler.NewCheckoutHandler(repos, clock),
		Report:   handler.NewReportHandler(repos, cfg.Delimiter()),
		Shipment: handler.NewShipmentHandler(repos),
		Events:   handler.NewEventsHandler(repos),
	})

	return &testApp{e: e, mem: mem, repos: repos}
}

func mustToken(t *testing.T, sub string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// body は nil 可。tab は X-Tab-ID。
func (a *testApp) do(t *testing.T, method, path, bearer, tab string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	if tab != "" {
		req.Header.Set(middleware.HeaderTabID, tab)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equalf(t, want, rec.Code, "body=%s", rec.Body.String())
}

func mustDecode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoErrorf(t, json.Unmarshal(rec.Body.Bytes(), &v), "body=%s", rec.Body.String())
	return v
}

func mustDecodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	return mustDecode[handler.ErrorResponse](t, rec)
}
