package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"scm/internal/config"
	"scm/internal/middleware"
	"scm/internal/repository"

	"github.com/labstack/echo/v4"
)

// 接続維持用のコメント送信間隔
const eventsPingInterval = 25 * time.Second

// /events（他タブの書き込みを SSE で流す）
type EventsHandler struct {
	notifiers repository.ScopedNotifiers
}

// DI
func NewEventsHandler(notifiers repository.ScopedNotifiers) *EventsHandler {
	return &EventsHandler{notifiers: notifiers}
}

func (h *EventsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/events", h.stream, middleware.TabOrigin(), middleware.AuthJWT(cfg))
}

func (h *EventsHandler) stream(c echo.Context) error {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	n, ok := h.notifiers.Notifier(scope)
	if !ok {
		return c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "change events not supported"})
	}

	//自分のタブの書き込みは流さない
	origin := middleware.OriginFrom(c)
	events := make(chan repository.ChangeEvent, 16)
	unsubscribe := n.Subscribe(func(ev repository.ChangeEvent) {
		if ev.Origin == origin {
			return
		}
		select {
		case events <- ev:
		default:
		}
	})
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ping := time.NewTicker(eventsPingInterval)
	defer ping.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ping.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case ev := <-events:
			b, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: change\ndata: %s\n\n", b); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
