package widget

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	widgetService "github.com/zhouzirui/faqdesk/backend/internal/service/widget"
	"github.com/zhouzirui/faqdesk/backend/pkg/utils"
)

// Handler 聊天面板的HTTP处理器
type Handler struct {
	widgets *widgetService.Service
}

// New 创建聊天面板处理器
func New(widgets *widgetService.Service) *Handler {
	return &Handler{widgets: widgets}
}

// RegisterRoutes 注册聊天面板相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/widgets", h.handleCreate)
	r.Route("/widgets/{sessionID}", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Delete("/", h.handleTeardown)
		r.Post("/topics", h.handleSelectTopic)
		r.Put("/draft", h.handleSetDraft)
		r.Post("/messages", h.handleSubmit)
		r.Post("/minimize", h.handleToggleMinimize)
		r.Post("/close", h.handleClose)
	})
}

// handleCreate 创建面板会话
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	snap, err := h.widgets.CreateSession(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, snap)
}

// handleSnapshot 返回面板当前快照
func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.widgets.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleTeardown 丢弃面板及其待发送的回复
func (h *Handler) handleTeardown(w http.ResponseWriter, r *http.Request) {
	if err := h.widgets.Teardown(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		RespondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectTopic 选择FAQ主题
func (h *Handler) handleSelectTopic(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.widgets.SelectTopic(r.Context(), chi.URLParam(r, "sessionID"), payload.Title)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, snap)
}

// handleSetDraft 更新输入框内容
func (h *Handler) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.widgets.SetDraft(r.Context(), chi.URLParam(r, "sessionID"), payload.Text)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleSubmit 提交自由文本；未携带text时提交当前输入框内容
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	var (
		snap widgetService.Snapshot
		err  error
	)
	if payload.Text == nil {
		snap, err = h.widgets.SubmitDraft(r.Context(), sessionID)
	} else {
		snap, err = h.widgets.SubmitFreeText(r.Context(), sessionID, *payload.Text)
	}
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, snap)
}

// handleToggleMinimize 折叠或展开面板
func (h *Handler) handleToggleMinimize(w http.ResponseWriter, r *http.Request) {
	snap, err := h.widgets.ToggleMinimize(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleClose 关闭面板
func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	snap, err := h.widgets.Close(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// StatusFor 将服务层错误映射为HTTP状态码
func StatusFor(err error) int {
	switch {
	case errors.Is(err, widgetService.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, widgetService.ErrSessionClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// RespondServiceError 按对应状态码返回错误
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("widget request failed")
	}
	utils.RespondError(w, status, err.Error())
}
