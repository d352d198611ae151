package services

import (
	"context"
	"errors"
	"sync"

	"seenafile_server/models"
	"seenafile_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory stand-in for the DynamoDB client. It implements
// just enough of each operation's semantics for the service tests: key-equals
// queries, userId-exclusion scans, and if_not_exists on conversation updates.
type fakeDynamo struct {
	mu sync.Mutex

	profiles      map[string]models.UserProfile
	interactions  map[string][]models.MovieInteraction
	conversations map[string]map[string]types.AttributeValue
	messages      map[string][]map[string]types.AttributeValue

	failInteractionsFor map[string]bool
	failMatchWrites     bool

	matchPuts      []models.Match
	deletedMatches []string
	scanCalls      int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		profiles:            map[string]models.UserProfile{},
		interactions:        map[string][]models.MovieInteraction{},
		conversations:       map[string]map[string]types.AttributeValue{},
		messages:            map[string][]map[string]types.AttributeValue{},
		failInteractionsFor: map[string]bool{},
	}
}

func (f *fakeDynamo) addProfile(p models.UserProfile) {
	f.profiles[p.UserID] = p
}

func (f *fakeDynamo) addInteractions(userID string, movieIDs ...string) {
	for _, movieID := range movieIDs {
		f.interactions[userID] = append(f.interactions[userID], models.MovieInteraction{
			UserID:    userID,
			MovieID:   movieID,
			Title:     "Movie " + movieID,
			Category:  models.CategoryWatched,
			Status:    models.CategoryWatched,
			CreatedAt: "2026-01-01T00:00:00Z",
		})
	}
}

func stringAttr(item map[string]types.AttributeValue, field string) string {
	return utils.ExtractString(item, field)
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch *in.TableName {
	case models.UsersTable:
		userID := stringAttr(in.Key, "userId")
		profile, ok := f.profiles[userID]
		if !ok {
			return &dynamodb.GetItemOutput{}, nil
		}
		item, err := attributevalue.MarshalMap(profile)
		if err != nil {
			return nil, err
		}
		return &dynamodb.GetItemOutput{Item: item}, nil
	case models.ConversationsTable:
		chatID := stringAttr(in.Key, "chatId")
		item, ok := f.conversations[chatID]
		if !ok {
			return &dynamodb.GetItemOutput{}, nil
		}
		return &dynamodb.GetItemOutput{Item: item}, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch *in.TableName {
	case models.MovieInteractionsTable:
		userID := stringAttr(in.ExpressionAttributeValues, ":userId")
		if f.failInteractionsFor[userID] {
			return nil, errors.New("simulated store failure")
		}
		var items []map[string]types.AttributeValue
		for _, interaction := range f.interactions[userID] {
			item, err := attributevalue.MarshalMap(interaction)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &dynamodb.QueryOutput{Items: items}, nil
	case models.MessagesTable:
		chatID := stringAttr(in.ExpressionAttributeValues, ":chatId")
		items := append([]map[string]types.AttributeValue{}, f.messages[chatID]...)
		if in.ScanIndexForward != nil && !*in.ScanIndexForward {
			for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
				items[i], items[j] = items[j], items[i]
			}
		}
		if in.Limit != nil && int(*in.Limit) < len(items) {
			items = items[:*in.Limit]
		}
		return &dynamodb.QueryOutput{Items: items}, nil
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scanCalls++

	if *in.TableName != models.UsersTable {
		return &dynamodb.ScanOutput{}, nil
	}

	excluded := stringAttr(in.ExpressionAttributeValues, ":userId")

	var items []map[string]types.AttributeValue
	for userID, profile := range f.profiles {
		if userID == excluded {
			continue
		}
		item, err := attributevalue.MarshalMap(profile)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch *in.TableName {
	case models.MatchesTable:
		if f.failMatchWrites {
			return nil, errors.New("simulated match write failure")
		}
		var match models.Match
		if err := attributevalue.UnmarshalMap(in.Item, &match); err != nil {
			return nil, err
		}
		f.matchPuts = append(f.matchPuts, match)
	case models.MessagesTable:
		chatID := stringAttr(in.Item, "chatId")
		f.messages[chatID] = append(f.messages[chatID], in.Item)
	case models.MovieInteractionsTable:
		var interaction models.MovieInteraction
		if err := attributevalue.UnmarshalMap(in.Item, &interaction); err != nil {
			return nil, err
		}
		f.interactions[interaction.UserID] = append(f.interactions[interaction.UserID], interaction)
	case models.UsersTable:
		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(in.Item, &profile); err != nil {
			return nil, err
		}
		f.profiles[profile.UserID] = profile
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch *in.TableName {
	case models.ConversationsTable:
		chatID := stringAttr(in.Key, "chatId")
		item, ok := f.conversations[chatID]
		if !ok {
			item = map[string]types.AttributeValue{
				"chatId": &types.AttributeValueMemberS{Value: chatID},
			}
			f.conversations[chatID] = item
		}
		// if_not_exists: first writer wins
		if stringAttr(item, "encryptionKey") == "" {
			item["encryptionKey"] = in.ExpressionAttributeValues[":key"]
			item["createdAt"] = in.ExpressionAttributeValues[":now"]
		}
		return &dynamodb.UpdateItemOutput{Attributes: item}, nil
	case models.MessagesTable:
		chatID := stringAttr(in.Key, "chatId")
		createdAt := stringAttr(in.Key, "createdAt")
		for _, item := range f.messages[chatID] {
			if stringAttr(item, "createdAt") == createdAt {
				item["isUnread"] = in.ExpressionAttributeValues[":false"]
			}
		}
		return &dynamodb.UpdateItemOutput{}, nil
	case models.MatchesTable:
		matchID := stringAttr(in.Key, "matchId")
		for i := range f.matchPuts {
			if f.matchPuts[i].MatchID == matchID {
				f.matchPuts[i].IsNew = false
			}
		}
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch *in.TableName {
	case models.ConversationsTable:
		delete(f.conversations, stringAttr(in.Key, "chatId"))
	case models.MatchesTable:
		matchID := stringAttr(in.Key, "matchId")
		f.deletedMatches = append(f.deletedMatches, matchID)
		kept := f.matchPuts[:0]
		for _, match := range f.matchPuts {
			if match.MatchID != matchID {
				kept = append(kept, match)
			}
		}
		f.matchPuts = kept
	case models.MovieInteractionsTable:
		userID := stringAttr(in.Key, "userId")
		movieID := stringAttr(in.Key, "movieId")
		kept := f.interactions[userID][:0]
		for _, interaction := range f.interactions[userID] {
			if interaction.MovieID != movieID {
				kept = append(kept, interaction)
			}
		}
		f.interactions[userID] = kept
	case models.UsersTable:
		delete(f.profiles, stringAttr(in.Key, "userId"))
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for tableName, requests := range in.RequestItems {
		if tableName != models.MessagesTable {
			continue
		}
		for _, request := range requests {
			if request.DeleteRequest == nil {
				continue
			}
			chatID := stringAttr(request.DeleteRequest.Key, "chatId")
			createdAt := stringAttr(request.DeleteRequest.Key, "createdAt")
			kept := f.messages[chatID][:0]
			for _, item := range f.messages[chatID] {
				if stringAttr(item, "createdAt") != createdAt {
					kept = append(kept, item)
				}
			}
			f.messages[chatID] = kept
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}
