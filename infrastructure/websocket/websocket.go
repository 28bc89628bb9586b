package websocket

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"taskstream/domain/dto"
	"taskstream/pkg/logger"
)

// Manager owns every live websocket connection. One connection per user: a
// new connection for an already-connected user replaces the old one. All
// writes go through the run loop so a connection never sees concurrent
// writers.
type Manager struct {
	clients         map[*websocket.Conn]Client
	userConnections map[uuid.UUID]*websocket.Conn
	register        chan Client
	unregister      chan *websocket.Conn
	broadcast       chan BroadcastMessage
	closeUser       chan uuid.UUID
	mutex           sync.RWMutex
}

type Client struct {
	Conn   *websocket.Conn
	UserID uuid.UUID
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type BroadcastMessage struct {
	Message Message
	UserID  *uuid.UUID // nil broadcasts to everyone
}

// Message types on the wire.
const (
	MessageTypeSnapshot = "tasks_snapshot"
	MessageTypeStatus   = "status"
	MessageTypePong     = "pong"
)

func NewManager() *Manager {
	m := &Manager{
		clients:         make(map[*websocket.Conn]Client),
		userConnections: make(map[uuid.UUID]*websocket.Conn),
		register:        make(chan Client),
		unregister:      make(chan *websocket.Conn),
		broadcast:       make(chan BroadcastMessage),
		closeUser:       make(chan uuid.UUID),
	}
	go m.run()
	return m
}

func (m *Manager) run() {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()

			if oldConn, exists := m.userConnections[client.UserID]; exists {
				logger.Info("Replacing existing connection", "user_id", client.UserID)
				delete(m.clients, oldConn)
				oldConn.Close()
			}

			m.clients[client.Conn] = client
			m.userConnections[client.UserID] = client.Conn
			m.mutex.Unlock()

			logger.Info("Feed client connected", "user_id", client.UserID)

		case conn := <-m.unregister:
			m.mutex.Lock()
			if client, ok := m.clients[conn]; ok {
				delete(m.clients, conn)

				if currentConn, exists := m.userConnections[client.UserID]; exists && currentConn == conn {
					delete(m.userConnections, client.UserID)
				}

				conn.Close()
				logger.Info("Feed client disconnected", "user_id", client.UserID)
			}
			m.mutex.Unlock()

		case message := <-m.broadcast:
			m.mutex.RLock()
			if message.UserID != nil {
				if conn, exists := m.userConnections[*message.UserID]; exists {
					m.sendMessage(conn, message.Message)
				}
			} else {
				for conn := range m.clients {
					m.sendMessage(conn, message.Message)
				}
			}
			m.mutex.RUnlock()

		case userID := <-m.closeUser:
			m.mutex.Lock()
			if conn, exists := m.userConnections[userID]; exists {
				delete(m.clients, conn)
				delete(m.userConnections, userID)

				// Final empty snapshot precedes the close so the client never
				// keeps the previous session's collection on screen.
				m.sendMessage(conn, Message{Type: MessageTypeSnapshot, Data: dto.EmptySnapshot()})
				conn.Close()
				logger.Info("Feed connection closed by sign-out", "user_id", userID)
			}
			m.mutex.Unlock()
		}
	}
}

func (m *Manager) sendMessage(conn *websocket.Conn, message Message) {
	if err := conn.WriteJSON(message); err != nil {
		logger.Warn("Websocket write failed", "error", err)
		go func() { m.unregister <- conn }()
	}
}

func (m *Manager) RegisterClient(conn *websocket.Conn, userID uuid.UUID) {
	m.register <- Client{Conn: conn, UserID: userID}
}

func (m *Manager) UnregisterClient(conn *websocket.Conn) {
	m.unregister <- conn
}

func (m *Manager) BroadcastToUser(userID uuid.UUID, messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
		UserID:  &userID,
	}
}

func (m *Manager) BroadcastToAll(messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
	}
}

// CloseUser drops the user's connection, if any. Used on sign-out after the
// final empty snapshot has been delivered.
func (m *Manager) CloseUser(userID uuid.UUID) {
	m.closeUser <- userID
}

// ConnectedUserIDs lists users with a live connection.
func (m *Manager) ConnectedUserIDs() []uuid.UUID {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := make([]uuid.UUID, 0, len(m.userConnections))
	for id := range m.userConnections {
		ids = append(ids, id)
	}
	return ids
}

func (m *Manager) TotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
