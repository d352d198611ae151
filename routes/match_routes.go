package routes

import (
	"seenafile_server/controllers"
	"seenafile_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match-related operations under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()

	matchRouter.HandleFunc("/compute", controller.HandleComputeMatchForPair).Methods("GET")
	matchRouter.HandleFunc("/compute-all", controller.HandleComputeMatchesForAllUsers).Methods("GET")
	matchRouter.HandleFunc("/current", controller.HandleGetCurrentMatches).Methods("GET")
	matchRouter.HandleFunc("/seen", controller.HandleMarkMatchSeen).Methods("POST")
	matchRouter.HandleFunc("/unmatch", controller.HandleUnmatch).Methods("POST")
}
