package routes

import (
	"net/http"

	"rendezvous_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up the unauthenticated routes and returns the /api
// subrouter on which every route requires a party id.
func RegisterRoutes(r *mux.Router) *mux.Router {
	r.Use(loggingMiddleware)
	r.HandleFunc("/", controllers.WelcomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	return api
}
