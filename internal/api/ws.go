package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard is same-origin; API clients carry their own auth.
		return true
	},
}

type wsError struct {
	Error string `json:"error"`
}

// RegisterWS adds the websocket chat route. One JSON chatRequest in, one
// chatResponse out, over a persistent connection.
func (h *Handler) RegisterWS(mux *http.ServeMux) {
	mux.HandleFunc("/ws/chat", h.handleChatWS)
}

func (h *Handler) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}

		resp, err := h.chat(r.Context(), req)
		if err != nil {
			if werr := conn.WriteJSON(wsError{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("[ws] write failed: %v", err)
			return
		}
	}
}
