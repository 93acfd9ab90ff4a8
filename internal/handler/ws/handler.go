package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	widgetHandler "github.com/zhouzirui/faqdesk/backend/internal/handler/widget"
	widgetService "github.com/zhouzirui/faqdesk/backend/internal/service/widget"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// 客户端事件类型
const (
	EventSelectTopic    = "select_topic"
	EventSubmit         = "submit"
	EventDraft          = "draft"
	EventToggleMinimize = "toggle_minimize"
	EventClose          = "close"
)

// Handler 面板的WebSocket处理器，客户端发送界面事件，服务端在每次状态变化后返回快照
type Handler struct {
	widgets  *widgetService.Service
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(widgets *widgetService.Service) *Handler {
	return &Handler{
		widgets: widgets,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/widgets/{sessionID}/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// TextData select_topic、submit、draft事件的负载
type TextData struct {
	Title string  `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// conn 串行化写操作，gorilla连接只允许一个并发写者
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msgType string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(outgoingMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	log := hlog.FromRequest(r).With().Str("session", sessionID).Logger()

	updates, unsubscribe, err := h.widgets.Subscribe(r.Context(), sessionID)
	if err != nil {
		widgetHandler.RespondServiceError(w, r, err)
		return
	}
	defer unsubscribe()

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer wsConn.Close()
	c := &conn{ws: wsConn}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		return wsConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.writeLoop(ctx, cancel, c, updates, log)

	for {
		var msg inboundMessage
		if err := wsConn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))

		if err := h.handleMessage(ctx, sessionID, &msg); err != nil {
			if sendErr := c.send("error", map[string]string{"message": err.Error()}); sendErr != nil {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// writeLoop 转发快照并定时发送ping保活
func (h *Handler) writeLoop(ctx context.Context, cancel context.CancelFunc, c *conn, updates <-chan widgetService.Snapshot, log zerolog.Logger) {
	defer cancel()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, open := <-updates:
			if !open {
				_ = c.send("end", nil)
				_ = c.ws.Close()
				return
			}
			if err := c.send("snapshot", snap); err != nil {
				log.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

var errUnknownEvent = errors.New("unknown event type")

func (h *Handler) handleMessage(ctx context.Context, sessionID string, msg *inboundMessage) error {
	var data TextData
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return errors.New("invalid event data")
		}
	}

	var err error
	switch msg.Type {
	case EventSelectTopic:
		_, err = h.widgets.SelectTopic(ctx, sessionID, data.Title)
	case EventSubmit:
		if data.Text == nil {
			_, err = h.widgets.SubmitDraft(ctx, sessionID)
		} else {
			_, err = h.widgets.SubmitFreeText(ctx, sessionID, *data.Text)
		}
	case EventDraft:
		text := ""
		if data.Text != nil {
			text = *data.Text
		}
		_, err = h.widgets.SetDraft(ctx, sessionID, text)
	case EventToggleMinimize:
		_, err = h.widgets.ToggleMinimize(ctx, sessionID)
	case EventClose:
		_, err = h.widgets.Close(ctx, sessionID)
	default:
		return errUnknownEvent
	}
	return err
}
