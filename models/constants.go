package models

// ✅ Movie interaction categories (how a user shelved a movie)
const (
	CategoryWatched    = "watched"
	CategoryMostWatch  = "most_watch"
	CategoryWatchLater = "watch_later"
	CategoryCritics    = "critics"
)

// ✅ Match statuses
const (
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)

// ✅ Fallback values applied when a stored record is missing fields.
// Malformed interactions must not abort a scoring pass.
const (
	DefaultMovieTitle  = "Unknown Movie"
	DefaultCategory    = CategoryWatched
	DefaultDisplayName = "Unknown User"
)
