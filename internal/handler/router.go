package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/faqdesk/backend/internal/handler/stream"
	"github.com/zhouzirui/faqdesk/backend/internal/handler/topic"
	"github.com/zhouzirui/faqdesk/backend/internal/handler/ui"
	"github.com/zhouzirui/faqdesk/backend/internal/handler/widget"
	"github.com/zhouzirui/faqdesk/backend/internal/handler/ws"
	"github.com/zhouzirui/faqdesk/backend/internal/logging"
	middlewarePkg "github.com/zhouzirui/faqdesk/backend/internal/middleware"
	widgetService "github.com/zhouzirui/faqdesk/backend/internal/service/widget"
)

// NewRouter 将HTTP路由连接到核心服务，limiter为nil时不限流
func NewRouter(logger zerolog.Logger, widgets *widgetService.Service, limiter *middlewarePkg.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger)...)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	ui.New().RegisterRoutes(r)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		topic.New(widgets.Catalog()).RegisterRoutes(api)

		// 长连接不做限流
		stream.New(widgets).RegisterRoutes(api)
		ws.New(widgets).RegisterRoutes(api)

		api.Group(func(g chi.Router) {
			if limiter != nil {
				g.Use(limiter.Handler)
			}
			widget.New(widgets).RegisterRoutes(g)
		})
	})

	return r
}
