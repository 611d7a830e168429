package wsnotify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocketManager struct {
	clients map[*websocket.Conn]bool
	lock    sync.RWMutex
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func Upgrader() *websocket.Upgrader {
	return &upgrader
}

var Manager = &WebSocketManager{
	clients: make(map[*websocket.Conn]bool),
}

func (m *WebSocketManager) AddClient(conn *websocket.Conn) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clients[conn] = true
}

func (m *WebSocketManager) RemoveClient(conn *websocket.Conn) {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.clients, conn)
}

func (m *WebSocketManager) Broadcast(event interface{}) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	for client := range m.clients {
		client.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := client.WriteJSON(event); err != nil {
			client.Close()
			go m.RemoveClient(client)
		}
	}
}

type ContactPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Number    string `json:"number"`
	AvatarURL string `json:"avatarUrl"`
	AIActive  bool   `json:"aiActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ContactEvent struct {
	Type    string         `json:"type"`
	Payload ContactPayload `json:"payload"`
}

type ContactDeletedEvent struct {
	Type    string `json:"type"`
	Payload struct {
		ID int `json:"id"`
	} `json:"payload"`
}

func SendContactEvent(
	id int,
	name string,
	number string,
	avatarURL string,
	aiActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) {
	payload := ContactPayload{
		ID:        id,
		Name:      name,
		Number:    number,
		AvatarURL: avatarURL,
		AIActive:  aiActive,
		CreatedAt: createdAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339Nano),
	}
	event := ContactEvent{
		Type:    "contact",
		Payload: payload,
	}
	Manager.Broadcast(event)
}

func SendContactDeletedEvent(id int) {
	event := ContactDeletedEvent{Type: "contact_deleted"}
	event.Payload.ID = id
	Manager.Broadcast(event)
}
