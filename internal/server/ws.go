package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/logger"
	"github.com/theirongolddev/lifeos/internal/model"
)

const wsReadTimeout = 10 * time.Minute

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")
	},
}

// ClientFrame is what a websocket client sends.
type ClientFrame struct {
	Text       string `json:"text"`
	Regenerate bool   `json:"regenerate,omitempty"`
}

// ServerFrame is what the server pushes back.
type ServerFrame struct {
	Type    string         `json:"type"`
	Message *model.Message `json:"message,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// handleChatSocket runs a live chat over a websocket. Each client frame is
// submitted to the mode's conversation and the appended messages are echoed.
func (s *Service) handleChatSocket(c *gin.Context) {
	conv := conversationFrom(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	log := logger.Get().With(zap.String("mode", string(conv.Mode())), zap.String("remote", c.Request.RemoteAddr))
	log.Info("websocket connected")

	ctx := c.Request.Context()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		var frame ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var (
			result chat.Exchange
			err    error
		)
		if frame.Regenerate {
			result, err = conv.Regenerate(ctx)
		} else {
			result, err = conv.Submit(ctx, frame.Text)
		}
		if err != nil {
			_ = conn.WriteJSON(ServerFrame{Type: "error", Error: err.Error()})
			continue
		}
		if result.Skipped() {
			_ = conn.WriteJSON(ServerFrame{Type: "skipped", Kind: string(result.Result.Kind)})
			continue
		}

		for _, m := range []model.Message{result.User, result.Reply} {
			if m.ID == "" {
				continue
			}
			m := m
			s.publish(EventMessage, m)
			if err := conn.WriteJSON(ServerFrame{Type: EventMessage, Message: &m, Kind: string(result.Result.Kind)}); err != nil {
				log.Warn("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
