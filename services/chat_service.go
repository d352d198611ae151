package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"seenafile_server/crypto"
	"seenafile_server/models"
	"seenafile_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService owns conversation documents and their encrypted messages.
// Message bodies never hit DynamoDB in plaintext: they are sealed with the
// conversation key on the way in and opened on the way out.
type ChatService struct {
	Dynamo *DynamoService
}

// GetOrCreateConversationKey returns the conversation's symmetric key,
// generating and persisting one if this is the first open. The write uses
// if_not_exists so two participants opening simultaneously converge on a
// single key instead of clobbering each other.
func (s *ChatService) GetOrCreateConversationKey(ctx context.Context, chatID string, participants []string) (string, error) {
	key := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, key)
	if err != nil {
		return "", fmt.Errorf("failed to fetch conversation %s: %w", chatID, err)
	}
	if item != nil {
		if existing := utils.ExtractString(item, "encryptionKey"); existing != "" {
			return existing, nil
		}
	}

	generated, err := crypto.GenerateChatKey()
	if err != nil {
		return "", err
	}

	updateExpression := "SET encryptionKey = if_not_exists(encryptionKey, :key), createdAt = if_not_exists(createdAt, :now)"
	expressionValues := map[string]types.AttributeValue{
		":key": &types.AttributeValueMemberS{Value: generated},
		":now": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
	}

	if len(participants) > 0 {
		participantsAttr, err := attributevalue.Marshal(participants)
		if err != nil {
			return "", fmt.Errorf("failed to marshal participants: %w", err)
		}
		updateExpression += ", participants = if_not_exists(participants, :participants)"
		expressionValues[":participants"] = participantsAttr
	}

	attrs, err := s.Dynamo.UpdateItem(ctx, models.ConversationsTable, updateExpression, key, expressionValues, nil)
	if err != nil {
		return "", fmt.Errorf("failed to store conversation key for %s: %w", chatID, err)
	}

	// The returned attributes hold whichever key won the race.
	winner := utils.ExtractString(attrs, "encryptionKey")
	if winner == "" {
		winner = generated
	}

	log.Printf("🔑 Conversation key ready for %s", chatID)
	return winner, nil
}

// SendMessage encrypts and stores a new message. The returned message
// carries the plaintext in Content for realtime fan-out; only the
// ciphertext is persisted.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, plaintext string) (*models.Message, error) {
	conversationKey, err := s.GetOrCreateConversationKey(ctx, chatID, nil)
	if err != nil {
		return nil, err
	}

	payload, err := crypto.EncryptMessage(plaintext, conversationKey)
	if err != nil {
		return nil, err
	}

	message := models.Message{
		ChatID:        chatID,
		CreatedAt:     time.Now().Format(time.RFC3339Nano),
		MessageID:     uuid.New().String(),
		SenderID:      senderID,
		EncryptedText: payload.EncryptedText,
		IV:            payload.IV,
	}
	message.SetIsUnread(true)

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		log.Printf("❌ Failed to store message: %v", err)
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	message.Content = plaintext

	log.Printf("📩 Message %s stored for %s", message.MessageID, chatID)
	return &message, nil
}

// GetMessages fetches the latest messages for a conversation (oldest first
// in the returned slice, so the newest renders at the bottom) and decrypts
// each body. A message that fails to decrypt carries the fallback sentinel
// in Content rather than failing the whole fetch.
func (s *ChatService) GetMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	conversationKey := ""
	convKeyAttr := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	if item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, convKeyAttr); err == nil && item != nil {
		conversationKey = utils.ExtractString(item, "encryptionKey")
	}

	keyCondition := "chatId = :chatId"
	expressionValues := map[string]types.AttributeValue{
		":chatId": &types.AttributeValueMemberS{Value: chatID},
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, nil, int32(limit), true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Reverse so the latest message appears last
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	for i := range messages {
		messages[i].Content = crypto.DecryptMessage(messages[i].EncryptedText, messages[i].IV, conversationKey)
	}

	log.Printf("✅ Found %d messages for %s", len(messages), chatID)
	return messages, nil
}

// MarkMessagesAsRead marks messages NOT sent by userID as read
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, chatID, userID string) error {
	keyCondition := "chatId = :chatId"
	expressionValues := map[string]types.AttributeValue{
		":chatId": &types.AttributeValueMemberS{Value: chatID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	var toUpdate []models.Message
	for _, item := range items {
		var message models.Message
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			log.Printf("⚠️ Failed to parse message: %v", err)
			continue
		}
		if message.SenderID != userID && message.IsUnread == "true" {
			toUpdate = append(toUpdate, message)
		}
	}

	for _, message := range toUpdate {
		key := map[string]types.AttributeValue{
			"chatId":    &types.AttributeValueMemberS{Value: message.ChatID},
			"createdAt": &types.AttributeValueMemberS{Value: message.CreatedAt},
		}

		updateExpression := "SET isUnread = :false"
		updateValues := map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberS{Value: "false"},
		}

		if _, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, updateValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", message.MessageID, err)
		}
	}

	log.Printf("✅ Marked %d messages as read for %s", len(toUpdate), chatID)
	return nil
}

// DeleteConversation removes every message and the conversation document
// (taking the encryption key with it). Called from the unmatch cascade.
func (s *ChatService) DeleteConversation(ctx context.Context, chatID string) error {
	keyCondition := "chatId = :chatId"
	expressionValues := map[string]types.AttributeValue{
		":chatId": &types.AttributeValueMemberS{Value: chatID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return fmt.Errorf("failed to list messages for deletion: %w", err)
	}

	if len(items) > 0 {
		writeRequests := make([]types.WriteRequest, 0, len(items))
		for _, item := range items {
			writeRequests = append(writeRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"chatId":    item["chatId"],
						"createdAt": item["createdAt"],
					},
				},
			})
		}

		if err := s.Dynamo.BatchWriteItems(ctx, models.MessagesTable, writeRequests); err != nil {
			return fmt.Errorf("failed to delete messages for %s: %w", chatID, err)
		}
	}

	convKey := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	if err := s.Dynamo.DeleteItem(ctx, models.ConversationsTable, convKey); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", chatID, err)
	}

	log.Printf("🗑️ Conversation %s deleted (%d messages)", chatID, len(items))
	return nil
}
