package handlers

import (
	"net/http"

	"contact-dashboard/internal/wsnotify"
)

// WebSocketHandler registra o dashboard como ouvinte de eventos de contato.
// O cliente é removido exatamente uma vez quando a conexão cai.
func WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wsnotify.Upgrader().Upgrade(w, r, nil)
	if err != nil {
		return
	}
	wsnotify.Manager.AddClient(conn)
	defer func() {
		wsnotify.Manager.RemoveClient(conn)
		conn.Close()
	}()
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
