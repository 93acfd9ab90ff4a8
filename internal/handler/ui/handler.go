package ui

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed panel.html
var panelHTML []byte

// Handler 提供浏览器端面板页面，页面只负责渲染从面板API收到的快照
type Handler struct{}

func New() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handlePanel)
}

func (h *Handler) handlePanel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(panelHTML)
}
