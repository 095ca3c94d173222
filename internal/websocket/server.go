// Package websocket pushes live update events (time overrides, schedule
// changes, announcements) to connected companion-app clients.
package websocket

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/isfaaghyth/kotlinconf-app/internal/crypto"
	"github.com/isfaaghyth/kotlinconf-app/pkg/logger"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // companion app runs on devices, allow all origins
	},
}

// ClientInfo stores information about a connected client
type ClientInfo struct {
	UserID string
	Conn   *websocket.Conn

	// writeMu serializes writes; gorilla connections support at most one
	// concurrent writer.
	writeMu sync.Mutex
}

func (ci *ClientInfo) writeJSON(v any) error {
	ci.writeMu.Lock()
	defer ci.writeMu.Unlock()
	return ci.Conn.WriteJSON(v)
}

// Server is a plain WebSocket broadcast server. Clients authenticate with a
// JWT passed as a query token on upgrade and then only receive; there is no
// client-to-server protocol.
type Server struct {
	jwtManager *crypto.JWTManager
	mu         sync.RWMutex
	clients    map[*websocket.Conn]*ClientInfo
}

// NewServer creates a new live update server
func NewServer(jwtManager *crypto.JWTManager) *Server {
	return &Server{
		jwtManager: jwtManager,
		clients:    make(map[*websocket.Conn]*ClientInfo),
	}
}

// HandleWebSocket handles WebSocket connections on GET /v1/updates
func (s *Server) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	claims, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("WebSocket upgrade error: %v", err)
		return
	}

	info := &ClientInfo{UserID: claims.UserID, Conn: conn}
	s.mu.Lock()
	s.clients[conn] = info
	s.mu.Unlock()

	logger.Debugf("live client connected: user=%s", info.UserID)

	// Drain the connection until the client goes away; inbound frames are
	// ignored.
	go func() {
		defer s.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) remove(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Broadcast sends an event to every connected client. Send failures drop
// the client.
func (s *Server) Broadcast(event types.LiveEvent) {
	s.mu.RLock()
	clients := make([]*ClientInfo, 0, len(s.clients))
	for _, info := range s.clients {
		clients = append(clients, info)
	}
	s.mu.RUnlock()

	for _, info := range clients {
		if err := info.writeJSON(event); err != nil {
			logger.Debugf("live client write failed, dropping: %v", err)
			s.remove(info.Conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects all clients.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]*ClientInfo)
}
