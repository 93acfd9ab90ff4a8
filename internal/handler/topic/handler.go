package topic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/faqdesk/backend/internal/model/faq"
	"github.com/zhouzirui/faqdesk/backend/pkg/utils"
)

// Handler topic目录的HTTP处理器
type Handler struct {
	topics faq.Store
}

// New 创建topic处理器
func New(topics faq.Store) *Handler {
	return &Handler{topics: topics}
}

// RegisterRoutes 注册topic相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/topics", h.handleListTopics)
}

// handleListTopics 按目录顺序列出所有topic
func (h *Handler) handleListTopics(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.topics.List())
}
