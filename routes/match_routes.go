package routes

import (
	"rendezvous_server/controllers"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match listings under /api/match
func RegisterMatchRoutes(api *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := api.PathPrefix("/match").Subrouter()
	matchRouter.HandleFunc("/liked-me", controller.GetLikedMe).Methods("GET")
	matchRouter.HandleFunc("/matches", controller.GetMatches).Methods("GET")
}
