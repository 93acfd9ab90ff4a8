package stream

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	widgetHandler "github.com/zhouzirui/faqdesk/backend/internal/handler/widget"
	widgetService "github.com/zhouzirui/faqdesk/backend/internal/service/widget"
	"github.com/zhouzirui/faqdesk/backend/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// Handler 通过Server-Sent Events推送面板快照
type Handler struct {
	widgets   *widgetService.Service
	heartbeat time.Duration
}

// New 创建流式处理器
func New(widgets *widgetService.Service) *Handler {
	return &Handler{widgets: widgets, heartbeat: heartbeatInterval}
}

// RegisterRoutes 注册快照流路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/widgets/{sessionID}/stream", h.handleStream)
}

// handleStream 每次状态变化发送一个snapshot事件，直到客户端断开或面板被销毁
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	log := hlog.FromRequest(r).With().Str("session", sessionID).Logger()

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	updates, cancel, err := h.widgets.Subscribe(ctx, sessionID)
	if err != nil {
		widgetHandler.RespondServiceError(w, r, err)
		return
	}
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	log.Debug().Msg("snapshot stream opened")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("snapshot stream closed by client")
			return
		case snap, open := <-updates:
			if !open {
				_ = utils.SendSSEEvent(w, flusher, "end", map[string]string{"sessionId": sessionID})
				return
			}
			if err := utils.SendSSEEvent(w, flusher, "snapshot", snap); err != nil {
				log.Warn().Err(err).Msg("failed to send snapshot")
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
