package models

// CommonMovie is one entry of the cross-section of two users' movie logs.
// Category/status come from the target user's copy of the interaction.
type CommonMovie struct {
	MovieID   string `dynamodbav:"movieId" json:"movieId"`
	Title     string `dynamodbav:"title" json:"title"`
	Category  string `dynamodbav:"category" json:"category"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

type Match struct {
	MatchID      string        `dynamodbav:"matchId" json:"matchId"` // ✅ Deterministic: sorted user IDs joined by "_"
	User1ID      string        `dynamodbav:"user1Id" json:"user1Id"`
	User2ID      string        `dynamodbav:"user2Id" json:"user2Id"`
	Score        float64       `dynamodbav:"score" json:"score"` // 0-100 compatibility
	CommonMovies []CommonMovie `dynamodbav:"commonMovies" json:"commonMovies"`
	Status       string        `dynamodbav:"status" json:"status"` // active, archived
	IsNew        bool          `dynamodbav:"isNew" json:"isNew"`   // cleared once the match list has been seen
	CreatedAt    string        `dynamodbav:"createdAt" json:"createdAt"`
}

// MatchCandidate is a scored pairing as returned to the client,
// enriched with the counterpart's profile fields.
type MatchCandidate struct {
	UserID       string        `json:"userId"`
	DisplayName  string        `json:"displayName"`
	PhotoURL     string        `json:"photoURL"`
	Score        float64       `json:"score"`
	CommonMovies []CommonMovie `json:"commonMovies"`
}

// MatchesTable is the DynamoDB table name for persisted matches
const MatchesTable = "Matches"
