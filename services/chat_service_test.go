package services

import (
	"context"
	"encoding/base64"
	"testing"

	"seenafile_server/crypto"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatService(fake *fakeDynamo) *ChatService {
	return &ChatService{Dynamo: &DynamoService{Client: fake}}
}

func TestGetOrCreateConversationKey_LazyAndStable(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	key1, err := cs.GetOrCreateConversationKey(context.Background(), "alice_bob", []string{"alice", "bob"})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(key1)
	require.NoError(t, err)
	assert.Len(t, raw, crypto.KeySize)

	// Second open returns the same key, never a rotation
	key2, err := cs.GetOrCreateConversationKey(context.Background(), "alice_bob", nil)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

func TestGetOrCreateConversationKey_DistinctPerChat(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	key1, err := cs.GetOrCreateConversationKey(context.Background(), "alice_bob", nil)
	require.NoError(t, err)
	key2, err := cs.GetOrCreateConversationKey(context.Background(), "alice_carol", nil)
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestSendMessage_EncryptsAtRest(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	message, err := cs.SendMessage(context.Background(), "alice_bob", "alice", "seen Parasite yet?")
	require.NoError(t, err)
	assert.Equal(t, "seen Parasite yet?", message.Content)

	require.Len(t, fake.messages["alice_bob"], 1)
	stored := fake.messages["alice_bob"][0]

	encryptedText := stringAttr(stored, "encryptedText")
	assert.NotEmpty(t, encryptedText)
	assert.NotEqual(t, "seen Parasite yet?", encryptedText)
	assert.NotEmpty(t, stringAttr(stored, "iv"))
	assert.Equal(t, "true", stringAttr(stored, "isUnread"))

	// Content is never persisted
	_, hasContent := stored["content"]
	assert.False(t, hasContent)
}

func TestGetMessages_DecryptsInOrder(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	for _, text := range []string{"first", "second", "third"} {
		_, err := cs.SendMessage(context.Background(), "alice_bob", "alice", text)
		require.NoError(t, err)
	}

	messages, err := cs.GetMessages(context.Background(), "alice_bob", 50)
	require.NoError(t, err)

	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestGetMessages_LimitKeepsLatest(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	for _, text := range []string{"first", "second", "third"} {
		_, err := cs.SendMessage(context.Background(), "alice_bob", "alice", text)
		require.NoError(t, err)
	}

	messages, err := cs.GetMessages(context.Background(), "alice_bob", 2)
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].Content)
	assert.Equal(t, "third", messages[1].Content)
}

func TestGetMessages_CorruptMessageGetsSentinel(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	_, err := cs.SendMessage(context.Background(), "alice_bob", "alice", "fine")
	require.NoError(t, err)
	_, err = cs.SendMessage(context.Background(), "alice_bob", "bob", "also fine")
	require.NoError(t, err)

	// Corrupt the first stored ciphertext
	fake.messages["alice_bob"][0]["encryptedText"] = &types.AttributeValueMemberS{Value: "%%% corrupt %%%"}

	messages, err := cs.GetMessages(context.Background(), "alice_bob", 50)
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, crypto.DecryptFallback, messages[0].Content)
	assert.Equal(t, "also fine", messages[1].Content)
}

func TestMarkMessagesAsRead_OnlyCounterpartMessages(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	_, err := cs.SendMessage(context.Background(), "alice_bob", "alice", "from alice")
	require.NoError(t, err)
	_, err = cs.SendMessage(context.Background(), "alice_bob", "bob", "from bob")
	require.NoError(t, err)

	// alice reads the conversation: only bob's message flips
	require.NoError(t, cs.MarkMessagesAsRead(context.Background(), "alice_bob", "alice"))

	for _, item := range fake.messages["alice_bob"] {
		switch stringAttr(item, "senderId") {
		case "alice":
			assert.Equal(t, "true", stringAttr(item, "isUnread"))
		case "bob":
			assert.Equal(t, "false", stringAttr(item, "isUnread"))
		}
	}
}

func TestDeleteConversation_RemovesEverything(t *testing.T) {
	fake := newFakeDynamo()
	cs := newTestChatService(fake)

	_, err := cs.SendMessage(context.Background(), "alice_bob", "alice", "soon gone")
	require.NoError(t, err)
	require.NotEmpty(t, fake.messages["alice_bob"])
	require.Contains(t, fake.conversations, "alice_bob")

	require.NoError(t, cs.DeleteConversation(context.Background(), "alice_bob"))

	assert.Empty(t, fake.messages["alice_bob"])
	assert.NotContains(t, fake.conversations, "alice_bob")
}
