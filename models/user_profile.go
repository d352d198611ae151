package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID         string   `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	DisplayName    string   `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL       string   `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	Bio            string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	FavoriteGenres []string `dynamodbav:"favoriteGenres,omitempty" json:"favoriteGenres,omitempty"`
	CreatedAt      string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// UsersTable is the DynamoDB table name for user profiles
const UsersTable = "Users"
