package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"seenafile_server/services"
)

// MatchController handles HTTP requests for match-related actions
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleComputeMatchForPair - Score the current user against one target user
func (mc *MatchController) HandleComputeMatchForPair(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	targetUserID := r.URL.Query().Get("targetUserId")

	if userID == "" || targetUserID == "" {
		http.Error(w, `{"error": "userId and targetUserId are required"}`, http.StatusBadRequest)
		return
	}

	candidate, err := mc.MatchService.ComputeMatchForPair(r.Context(), userID, targetUserID)
	if err != nil {
		log.Printf("❌ Failed to compute match for %s/%s: %v", userID, targetUserID, err)
		http.Error(w, `{"error": "Failed to compute match"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if candidate == nil {
		// No interactions for the current user, or target absent
		json.NewEncoder(w).Encode(map[string]interface{}{"match": nil})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"match": candidate})
}

// HandleComputeMatchesForAllUsers - Score the current user against everyone
func (mc *MatchController) HandleComputeMatchesForAllUsers(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.ComputeMatchesForAllUsers(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to compute matches for %s: %v", userID, err)
		http.Error(w, `{"error": "Failed to compute matches"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"matches": matches})
}

// HandleGetCurrentMatches - Fetch persisted matches for a user
func (mc *MatchController) HandleGetCurrentMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := mc.MatchService.GetCurrentMatches(r.Context(), userID)
	if err != nil {
		http.Error(w, `{"error": "Failed to fetch matches"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"matches": matches})
}

// HandleMarkMatchSeen - Clear the isNew notification flag on a match
func (mc *MatchController) HandleMarkMatchSeen(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.MarkMatchSeen(r.Context(), request.MatchID); err != nil {
		log.Printf("❌ Failed to mark match seen: %v", err)
		http.Error(w, `{"error": "Failed to mark match as seen"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleUnmatch - Cascade delete a pairing: messages, conversation, match
func (mc *MatchController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		User1ID string `json:"user1Id"`
		User2ID string `json:"user2Id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.User1ID == "" || request.User2ID == "" {
		http.Error(w, `{"error": "user1Id and user2Id are required"}`, http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.Unmatch(r.Context(), request.User1ID, request.User2ID); err != nil {
		log.Printf("❌ Failed to unmatch: %v", err)
		http.Error(w, `{"error": "Failed to unmatch"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Match and conversation removed",
	})
}
