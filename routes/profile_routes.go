package routes

import (
	"rendezvous_server/controllers"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile and like operations under /api/profiles
func RegisterProfileRoutes(api *mux.Router, profileService *services.ProfileService, matchService *services.MatchService) {
	profiles := controllers.NewProfileController(profileService)
	matches := controllers.NewMatchController(matchService)

	profileRouter := api.PathPrefix("/profiles").Subrouter()
	profileRouter.HandleFunc("", profiles.ListProfiles).Methods("GET")
	profileRouter.HandleFunc("/me", profiles.SaveProfile).Methods("PUT")
	profileRouter.HandleFunc("/{id}", profiles.GetProfile).Methods("GET")
	profileRouter.HandleFunc("/{id}/like", matches.Like).Methods("POST")
	profileRouter.HandleFunc("/{id}/like", matches.Unlike).Methods("DELETE")
}
