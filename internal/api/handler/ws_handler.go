package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ConnectionRegistry is the part of the websocket hub the handler needs.
type ConnectionRegistry interface {
	Register(userID string, conn *websocket.Conn)
	Unregister(userID string, conn *websocket.Conn)
}

// WSHandler upgrades authenticated requests to websocket connections that
// receive swap notifications.
type WSHandler struct {
	hub      ConnectionRegistry
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(hub ConnectionRegistry, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Connect handles GET /v1/ws. The connection is server-push only; inbound
// frames are read and discarded so control frames keep flowing.
//
// @Summary      Swap notification stream
// @Tags         notifications
// @Param        token  query  string  true  "JWT access token"
// @Success      101
// @Failure      401  {object}  errorResponse
// @Router       /v1/ws [get]
func (h *WSHandler) Connect(c echo.Context) error {
	a, err := ctxActor(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", a.ID).Msg("websocket upgrade failed")
		return nil
	}

	h.hub.Register(a.ID, conn)
	defer h.hub.Unregister(a.ID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("user_id", a.ID).Msg("websocket closed")
			}
			return nil
		}
	}
}
