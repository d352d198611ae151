package models

type Message struct {
	ChatID        string `dynamodbav:"chatId" json:"chatId"`       // ✅ Partition Key
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"` // ✅ Sort Key
	MessageID     string `dynamodbav:"messageId" json:"messageId"`
	SenderID      string `dynamodbav:"senderId" json:"senderId"`
	EncryptedText string `dynamodbav:"encryptedText" json:"encryptedText"` // base64 ciphertext
	IV            string `dynamodbav:"iv" json:"iv"`                       // base64, 16 random bytes per message
	IsUnread      string `dynamodbav:"isUnread" json:"isUnread"`           // stored as "true"/"false"
	Content       string `dynamodbav:"-" json:"content,omitempty"`         // decrypted plaintext, never persisted
}

// SetIsUnread stores the unread flag as a string for DynamoDB consistency
func (m *Message) SetIsUnread(unread bool) {
	if unread {
		m.IsUnread = "true"
	} else {
		m.IsUnread = "false"
	}
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
