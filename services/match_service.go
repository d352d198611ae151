package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"seenafile_server/models"
	"seenafile_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DefaultMatchThreshold is the minimum compatibility score (percent) at
// which a Match record is persisted.
const DefaultMatchThreshold = 20

// DefaultMatchWorkers bounds the concurrent pair-scoring fan-out of the
// all-users pass so a large user base cannot flood the store.
const DefaultMatchWorkers = 8

type MatchService struct {
	Dynamo       *DynamoService
	Interactions *InteractionService
	Chat         *ChatService
	Threshold    float64 // zero means DefaultMatchThreshold
	Workers      int     // zero means DefaultMatchWorkers
}

// GetUserProfile retrieves a user profile by ID. A missing profile returns
// (nil, nil), not an error.
func (ms *MatchService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ms.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile for %s: %w", userID, err)
	}

	return &profile, nil
}

// ComputeMatchForPair scores currentUserID against a single target user.
// Returns (nil, nil) when the current user has no interactions or the target
// does not exist. A qualifying score persists a Match as a side effect.
func (ms *MatchService) ComputeMatchForPair(ctx context.Context, currentUserID, targetUserID string) (*models.MatchCandidate, error) {
	mine, err := ms.Interactions.ListInteractions(ctx, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions for %s: %w", currentUserID, err)
	}
	if len(mine) == 0 {
		log.Printf("⚠️ %s has no interactions, nothing to compare", currentUserID)
		return nil, nil
	}

	targetProfile, err := ms.GetUserProfile(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %s: %w", targetUserID, err)
	}
	if targetProfile == nil {
		log.Printf("⚠️ Target user %s does not exist", targetUserID)
		return nil, nil
	}

	return ms.scoreAgainst(ctx, currentUserID, mine, targetProfile)
}

// ComputeMatchesForAllUsers scores the current user against every other user,
// persisting qualifying matches along the way. The result contains only
// candidates at or above the threshold, sorted descending by score, and is
// complete before returning (gather all, then filter).
func (ms *MatchService) ComputeMatchesForAllUsers(ctx context.Context, currentUserID string) ([]models.MatchCandidate, error) {
	mine, err := ms.Interactions.ListInteractions(ctx, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions for %s: %w", currentUserID, err)
	}
	if len(mine) == 0 {
		log.Printf("⚠️ %s has no interactions, skipping scoring pass", currentUserID)
		return []models.MatchCandidate{}, nil
	}

	var others []models.UserProfile
	err = ms.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, map[string]string{"userId": currentUserID}, &others)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	// Bounded fan-out: one slot per candidate so workers write without locks.
	results := make([]*models.MatchCandidate, len(others))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < ms.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				candidate, err := ms.scoreAgainst(ctx, currentUserID, mine, &others[i])
				if err != nil {
					// One bad user record must not abort the batch.
					log.Printf("⚠️ Skipping %s in scoring pass: %v", others[i].UserID, err)
					continue
				}
				results[i] = candidate
			}
		}()
	}

	for i := range others {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	matches := make([]models.MatchCandidate, 0, len(results))
	for _, candidate := range results {
		if candidate != nil && candidate.Score >= ms.threshold() {
			matches = append(matches, *candidate)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	log.Printf("✅ Scoring pass for %s: %d candidates over threshold out of %d users", currentUserID, len(matches), len(others))
	return matches, nil
}

// scoreAgainst runs the per-pair algorithm with the current user's
// interactions already in hand.
func (ms *MatchService) scoreAgainst(ctx context.Context, currentUserID string, mine []models.MovieInteraction, targetProfile *models.UserProfile) (*models.MatchCandidate, error) {
	theirs, err := ms.Interactions.ListInteractions(ctx, targetProfile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions for %s: %w", targetProfile.UserID, err)
	}

	lookup := make(map[string]struct{}, len(mine))
	for _, interaction := range mine {
		lookup[interaction.MovieID] = struct{}{}
	}

	// Overlap is keyed on movieId only; category rides along for display.
	var common []models.CommonMovie
	for _, interaction := range theirs {
		if interaction.MovieID == "" {
			continue
		}
		if _, shared := lookup[interaction.MovieID]; !shared {
			continue
		}
		interaction = NormalizeInteraction(interaction)
		common = append(common, models.CommonMovie{
			MovieID:   interaction.MovieID,
			Title:     interaction.Title,
			Category:  interaction.Category,
			Status:    interaction.Status,
			CreatedAt: interaction.CreatedAt,
		})
	}

	// Normalized intersection over the LARGER library, not symmetric Jaccard:
	// a small library sharing everything with a large one still scores on the
	// large denominator, which is the intended bias.
	larger := len(mine)
	if len(theirs) > larger {
		larger = len(theirs)
	}
	score := float64(len(common)) / float64(larger) * 100

	if score >= ms.threshold() && len(common) > 0 {
		ms.persistMatch(ctx, currentUserID, targetProfile.UserID, score, common)
	}

	displayName := targetProfile.DisplayName
	if displayName == "" {
		displayName = models.DefaultDisplayName
	}

	return &models.MatchCandidate{
		UserID:       targetProfile.UserID,
		DisplayName:  displayName,
		PhotoURL:     targetProfile.PhotoURL,
		Score:        score,
		CommonMovies: common,
	}, nil
}

// persistMatch upserts the Match record on its deterministic ID. A write
// failure is logged, not returned: the computed score is time-sensitive to
// the caller, the side record is not.
func (ms *MatchService) persistMatch(ctx context.Context, currentUserID, targetUserID string, score float64, common []models.CommonMovie) {
	match := models.Match{
		MatchID:      utils.PairID(currentUserID, targetUserID),
		User1ID:      currentUserID,
		User2ID:      targetUserID,
		Score:        score,
		CommonMovies: common,
		Status:       models.MatchStatusActive,
		IsNew:        true,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}

	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		log.Printf("❌ Failed to persist match %s: %v", match.MatchID, err)
		return
	}

	log.Printf("🎉 Match persisted: %s (score %.1f, %d common movies)", match.MatchID, score, len(common))
}

// GetCurrentMatches returns a user's persisted matches enriched with the
// counterpart's profile fields.
func (ms *MatchService) GetCurrentMatches(ctx context.Context, userID string) ([]map[string]interface{}, error) {
	var matches []models.Match
	err := ms.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "user1Id") == userID || utils.ExtractString(item, "user2Id") == userID
	}, nil, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for %s: %w", userID, err)
	}

	enriched := make([]map[string]interface{}, 0, len(matches))
	for _, match := range matches {
		counterpartID := match.User1ID
		if counterpartID == userID {
			counterpartID = match.User2ID
		}

		displayName := models.DefaultDisplayName
		photoURL := ""
		if profile, err := ms.GetUserProfile(ctx, counterpartID); err == nil && profile != nil {
			if profile.DisplayName != "" {
				displayName = profile.DisplayName
			}
			photoURL = profile.PhotoURL
		}

		enriched = append(enriched, map[string]interface{}{
			"matchId":      match.MatchID,
			"userId":       counterpartID,
			"displayName":  displayName,
			"photoURL":     photoURL,
			"score":        match.Score,
			"commonMovies": match.CommonMovies,
			"isNew":        match.IsNew,
			"status":       match.Status,
			"createdAt":    match.CreatedAt,
		})
	}

	return enriched, nil
}

// MarkMatchSeen clears the isNew notification flag once the match list has
// been observed.
func (ms *MatchService) MarkMatchSeen(ctx context.Context, matchID string) error {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	updateExpression := "SET isNew = :isNew"
	expressionValues := map[string]types.AttributeValue{
		":isNew": &types.AttributeValueMemberBOOL{Value: false},
	}

	_, err := ms.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, key, expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to mark match %s as seen: %w", matchID, err)
	}
	return nil
}

// Unmatch cascades: chat messages, conversation document (with its key),
// then the match record. Movie interactions are untouched.
func (ms *MatchService) Unmatch(ctx context.Context, user1ID, user2ID string) error {
	pairID := utils.PairID(user1ID, user2ID)

	if err := ms.Chat.DeleteConversation(ctx, pairID); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", pairID, err)
	}

	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: pairID},
	}
	if err := ms.Dynamo.DeleteItem(ctx, models.MatchesTable, key); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", pairID, err)
	}

	log.Printf("💔 Unmatched %s", pairID)
	return nil
}

func (ms *MatchService) threshold() float64 {
	if ms.Threshold > 0 {
		return ms.Threshold
	}
	return DefaultMatchThreshold
}

func (ms *MatchService) workers() int {
	if ms.Workers > 0 {
		return ms.Workers
	}
	return DefaultMatchWorkers
}
