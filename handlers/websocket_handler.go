package handlers

import (
	"log/slog"
	"net/http"

	"github.com/deadmouser/Uni-Arena/live"
	"github.com/deadmouser/Uni-Arena/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origins once they are settled.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	matchService services.MatchService
	logger       *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, ms services.MatchService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, matchService: ms, logger: logger}
}

// ServeMatch subscribes a websocket client to one match's live feed at
// /ws/matches/{matchID}. The match must exist before a room is opened.
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.matchService.GetByID(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("match_id", matchID),
			slog.Any("error", err),
		)
		return
	}

	client := live.NewClient(h.hub, conn, live.RoomForMatch(matchID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("websocket client subscribed",
		slog.Int("match_id", matchID),
		slog.String("client_id", client.ID),
	)
}
