package models

type Conversation struct {
	ChatID        string   `dynamodbav:"chatId" json:"chatId"` // ✅ Partition Key, same derivation as matchId
	Participants  []string `dynamodbav:"participants" json:"participants"`
	EncryptionKey string   `dynamodbav:"encryptionKey,omitempty" json:"encryptionKey,omitempty"` // base64, 32 bytes decoded
	CreatedAt     string   `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationsTable is the DynamoDB table name for conversation documents
const ConversationsTable = "Conversations"
