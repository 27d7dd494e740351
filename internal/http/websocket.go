package http

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SubscribeHandler upgrades to a websocket that streams snapshots of the
// store path given in ?path=, for example tournaments/<id> or players.
func (s *Server) SubscribeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(r.URL.Query().Get("path"), "/")
		if path == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "path is required"})
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already answered the client.
			log.Warn("Failed to upgrade websocket", "path", path, "error", err)
			return
		}

		client := newClient(s.Hub, conn, path)
		go client.WritePump()
		s.Hub.Register(client)
		go client.ReadPump()
	}
}
