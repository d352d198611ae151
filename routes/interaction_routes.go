package routes

import (
	"seenafile_server/controllers"
	"seenafile_server/services"

	"github.com/gorilla/mux"
)

// RegisterInteractionRoutes sets up routes for movie interaction logging under /api/interactions
func RegisterInteractionRoutes(r *mux.Router, interactionService *services.InteractionService) {
	controller := controllers.NewInteractionController(interactionService)

	interactionRouter := r.PathPrefix("/api/interactions").Subrouter()

	interactionRouter.HandleFunc("", controller.HandleLogInteraction).Methods("POST")
	interactionRouter.HandleFunc("", controller.HandleListInteractions).Methods("GET")
	interactionRouter.HandleFunc("/category", controller.HandleUpdateCategory).Methods("PATCH")
	interactionRouter.HandleFunc("", controller.HandleRemoveInteraction).Methods("DELETE")
}
