package utils

// PairID derives the deterministic identifier shared by a Match record and
// its Conversation document: both participant IDs sorted and joined by "_".
// Either participant computes the same ID, so concurrent scoring passes
// upsert one record instead of appending duplicates.
func PairID(user1ID, user2ID string) string {
	if user2ID < user1ID {
		user1ID, user2ID = user2ID, user1ID
	}
	return user1ID + "_" + user2ID
}
