package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"seenafile_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleGetConversationKey - Fetch (or lazily create) the conversation key
func (c *ChatController) HandleGetConversationKey(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ChatID       string   `json:"chatId"`
		Participants []string `json:"participants"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ChatID == "" {
		http.Error(w, `{"error": "chatId is required"}`, http.StatusBadRequest)
		return
	}

	key, err := c.ChatService.GetOrCreateConversationKey(r.Context(), request.ChatID, request.Participants)
	if err != nil {
		log.Printf("❌ Failed to get conversation key: %v", err)
		http.Error(w, `{"error": "Failed to get conversation key"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"chatId":        request.ChatID,
		"encryptionKey": key,
	})
}

// HandleSendMessage - Encrypt and store a new message
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ChatID   string `json:"chatId"`
		SenderID string `json:"senderId"`
		Content  string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.ChatID == "" || request.SenderID == "" || request.Content == "" {
		http.Error(w, `{"error": "Missing required fields: chatId, senderId, or content"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.ChatID, request.SenderID, request.Content)
	if err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		http.Error(w, `{"error": "Failed to send message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": message,
	})
}

// HandleGetMessages - Fetch and decrypt messages for a conversation
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chatId")
	limitStr := r.URL.Query().Get("limit")

	if chatID == "" {
		http.Error(w, `{"error": "chatId is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50 // Default to 50 messages
	}

	messages, err := c.ChatService.GetMessages(r.Context(), chatID, limit)
	if err != nil {
		log.Printf("❌ Error fetching messages: %v", err)
		http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// HandleMarkMessagesAsRead - Mark messages received by user as read
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ChatID string `json:"chatId"`
		UserID string `json:"userId"` // who is marking messages as read
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.ChatID == "" || request.UserID == "" {
		http.Error(w, `{"error": "chatId and userId are required"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.MarkMessagesAsRead(r.Context(), request.ChatID, request.UserID); err != nil {
		http.Error(w, `{"error": "Failed to mark messages as read"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Messages received by user marked as read"})
}
