package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"seenafile_server/models"
	"seenafile_server/services"
)

// InteractionController handles HTTP requests for movie interaction logging
type InteractionController struct {
	InteractionService *services.InteractionService
}

// NewInteractionController creates a new InteractionController instance
func NewInteractionController(service *services.InteractionService) *InteractionController {
	return &InteractionController{InteractionService: service}
}

// HandleLogInteraction - Log (or re-log) a movie for a user
func (c *InteractionController) HandleLogInteraction(w http.ResponseWriter, r *http.Request) {
	var interaction models.MovieInteraction

	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if interaction.UserID == "" || interaction.MovieID == "" {
		http.Error(w, `{"error": "Missing required fields: userId, movieId"}`, http.StatusBadRequest)
		return
	}

	if err := c.InteractionService.LogInteraction(r.Context(), interaction); err != nil {
		log.Printf("❌ Failed to log interaction: %v", err)
		http.Error(w, `{"error": "Failed to log interaction"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Interaction logged successfully",
	})
}

// HandleListInteractions - Fetch a user's full movie log
func (c *InteractionController) HandleListInteractions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	interactions, err := c.InteractionService.ListInteractions(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to fetch interactions: %v", err)
		http.Error(w, `{"error": "Failed to fetch interactions"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"interactions": interactions,
	})
}

// HandleUpdateCategory - Reassign the category of a logged movie
func (c *InteractionController) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"userId"`
		MovieID  string `json:"movieId"`
		Category string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.UserID == "" || request.MovieID == "" || request.Category == "" {
		http.Error(w, `{"error": "Missing required fields: userId, movieId, category"}`, http.StatusBadRequest)
		return
	}

	if err := c.InteractionService.UpdateCategory(r.Context(), request.UserID, request.MovieID, request.Category); err != nil {
		log.Printf("❌ Failed to update category: %v", err)
		http.Error(w, `{"error": "Failed to update category"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleRemoveInteraction - Delete one movie from a user's log
func (c *InteractionController) HandleRemoveInteraction(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	movieID := r.URL.Query().Get("movieId")

	if userID == "" || movieID == "" {
		http.Error(w, `{"error": "userId and movieId are required"}`, http.StatusBadRequest)
		return
	}

	if err := c.InteractionService.RemoveInteraction(r.Context(), userID, movieID); err != nil {
		log.Printf("❌ Failed to remove interaction: %v", err)
		http.Error(w, `{"error": "Failed to remove interaction"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
