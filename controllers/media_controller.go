package controllers

import (
	"net/http"

	"rendezvous_server/services"

	"github.com/charmbracelet/log"
)

type MediaController struct {
	MediaService *services.MediaService
}

func NewMediaController(mediaService *services.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// GeneratePresignedURL generates a presigned URL for S3 uploads
func (mc *MediaController) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	url, key, err := mc.MediaService.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	log.Debug("Generated upload URL", "partyId", PartyID(r), "key", key)
	writeResult(w, http.StatusOK, "Upload URL generated", map[string]string{"url": url, "fileName": key})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func (mc *MediaController) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	url, err := mc.MediaService.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Read URL generated", map[string]string{"url": url})
}
