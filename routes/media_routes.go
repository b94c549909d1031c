package routes

import (
	"rendezvous_server/controllers"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up routes for S3-related operations under /api/media
func RegisterMediaRoutes(api *mux.Router, mediaService *services.MediaService) {
	controller := controllers.NewMediaController(mediaService)

	mediaRouter := api.PathPrefix("/media").Subrouter()
	mediaRouter.HandleFunc("/upload-url", controller.GeneratePresignedURL).Methods("POST")
	mediaRouter.HandleFunc("/read-url", controller.GetPresignedReadURL).Methods("POST")
}
