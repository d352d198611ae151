package routes

import (
	"seenafile_server/controllers"
	"seenafile_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	profileRouter.HandleFunc("", controller.HandleAddUserProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetUserProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleUpdateUserProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.HandleDeleteUserProfile).Methods("DELETE")
}
