package hub

import (
	"log"
	"net/http"

	"culturlens/internal/common"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Server exposes the hub's WebSocket endpoint. It listens on its own port,
// separate from the HTTP API.
type Server struct {
	hub        *Hub
	upgrader   websocket.Upgrader
	bufferSize int
}

func NewServer(hub *Hub, bufferSize int) *Server {
	return &Server{
		hub:        hub,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from the app origin, not the hub port.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleConnection)
	router.HandleFunc("/health", s.health).Methods("GET")
	return router
}

// handleConnection upgrades the handshake and registers the connection.
// A valid token in the query binds the connection to an identity for
// targeted delivery; without one the client still receives public-feed
// broadcasts.
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	var userID uint64
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := common.ValidToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID = claims.UserID
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s.hub, conn, userID, s.bufferSize)
	s.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
