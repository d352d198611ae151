package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the realtime relay. Clients join a room named
// after their chatId; sendMessage events are re-broadcast to the room as
// newMessage. Payloads pass through opaque — ciphertext plus metadata the
// recipient already knows how to open, never server-decrypted content.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, chatID string) {
		if chatID == "" {
			log.Println("❌ Invalid chatId in join request")
			return
		}
		log.Printf("👥 Socket %s joined chat %s\n", c.ID(), chatID)
		c.Join(chatID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, chatID string) {
		if chatID == "" {
			return
		}
		c.Leave(chatID)
	})

	server.OnEvent("/", "sendMessage", func(c socketio.Conn, message map[string]interface{}) {
		chatID, _ := message["chatId"].(string)
		if chatID == "" {
			log.Println("❌ sendMessage without chatId")
			return
		}
		log.Printf("📩 Relaying message for chat %s\n", chatID)
		server.BroadcastToRoom("/", chatID, "newMessage", message)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}
