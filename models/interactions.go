package models

type MovieInteraction struct {
	UserID     string `dynamodbav:"userId" json:"userId"`   // ✅ Partition Key
	MovieID    string `dynamodbav:"movieId" json:"movieId"` // ✅ Sort Key (stable TMDB identifier)
	Title      string `dynamodbav:"title" json:"title"`
	Category   string `dynamodbav:"category" json:"category"` // watched, most_watch, watch_later, critics
	Status     string `dynamodbav:"status" json:"status"`
	PosterPath string `dynamodbav:"posterPath,omitempty" json:"posterPath,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// MovieInteractionsTable is the DynamoDB table name for per-user movie logs
const MovieInteractionsTable = "MovieInteractions"
