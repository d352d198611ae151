package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"seenafile_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type InteractionService struct {
	Dynamo *DynamoService
	Cache  *CacheService // optional, nil when Redis is disabled
}

// LogInteraction stores one user's relationship to a movie. Logging the same
// movieId again overwrites the previous entry, so category reassignment is a
// plain re-log.
func (s *InteractionService) LogInteraction(ctx context.Context, interaction models.MovieInteraction) error {
	if interaction.UserID == "" || interaction.MovieID == "" {
		return fmt.Errorf("userId and movieId are required")
	}

	interaction = NormalizeInteraction(interaction)

	if err := s.Dynamo.PutItem(ctx, models.MovieInteractionsTable, interaction); err != nil {
		log.Printf("❌ Failed to save interaction: %v", err)
		return err
	}

	s.Cache.InvalidateInteractions(interaction.UserID)

	log.Printf("✅ Interaction saved: %s -> %s (%s)", interaction.UserID, interaction.MovieID, interaction.Category)
	return nil
}

// ListInteractions fetches a user's full movie log. When the live store is
// unreachable it falls back to the Redis cache; with neither available the
// error propagates and the caller decides on retry.
func (s *InteractionService) ListInteractions(ctx context.Context, userID string) ([]models.MovieInteraction, error) {
	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MovieInteractionsTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		if cached, ok := s.Cache.LoadInteractions(userID); ok {
			log.Printf("⚠️ Store unreachable for %s, serving %d interactions from cache", userID, len(cached))
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch interactions for %s: %w", userID, err)
	}

	var interactions []models.MovieInteraction
	if err := attributevalue.UnmarshalListOfMaps(items, &interactions); err != nil {
		return nil, fmt.Errorf("failed to parse interactions for %s: %w", userID, err)
	}

	for i := range interactions {
		interactions[i] = NormalizeInteraction(interactions[i])
	}

	s.Cache.StoreInteractions(userID, interactions)

	return interactions, nil
}

// UpdateCategory reassigns the category of an already-logged movie
func (s *InteractionService) UpdateCategory(ctx context.Context, userID, movieID, category string) error {
	key := map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"movieId": &types.AttributeValueMemberS{Value: movieID},
	}

	updateExpression := "SET category = :category"
	expressionValues := map[string]types.AttributeValue{
		":category": &types.AttributeValueMemberS{Value: category},
	}

	_, err := s.Dynamo.UpdateItem(ctx, models.MovieInteractionsTable, updateExpression, key, expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to update category for %s/%s: %w", userID, movieID, err)
	}

	s.Cache.InvalidateInteractions(userID)
	return nil
}

// RemoveInteraction deletes a single movie entry from a user's log
func (s *InteractionService) RemoveInteraction(ctx context.Context, userID, movieID string) error {
	key := map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"movieId": &types.AttributeValueMemberS{Value: movieID},
	}

	if err := s.Dynamo.DeleteItem(ctx, models.MovieInteractionsTable, key); err != nil {
		return err
	}

	s.Cache.InvalidateInteractions(userID)
	return nil
}

// NormalizeInteraction fills defaults for missing fields so malformed records
// never abort a scoring pass downstream.
func NormalizeInteraction(interaction models.MovieInteraction) models.MovieInteraction {
	if interaction.Title == "" {
		interaction.Title = models.DefaultMovieTitle
	}
	if interaction.Category == "" {
		interaction.Category = models.DefaultCategory
	}
	if interaction.Status == "" {
		interaction.Status = models.DefaultCategory
	}
	if interaction.CreatedAt == "" {
		interaction.CreatedAt = time.Now().Format(time.RFC3339)
	}
	return interaction
}
