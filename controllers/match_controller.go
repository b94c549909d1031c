package controllers

import (
	"net/http"

	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for likes and matches
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// Like handles POST /api/profiles/{id}/like
func (mc *MatchController) Like(w http.ResponseWriter, r *http.Request) {
	result, err := mc.MatchService.Like(r.Context(), PartyID(r), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, r, err)
		return
	}
	message := "Like recorded"
	if result.Matched {
		message = "It's a match!"
	}
	writeResult(w, http.StatusOK, message, result)
}

// Unlike handles DELETE /api/profiles/{id}/like
func (mc *MatchController) Unlike(w http.ResponseWriter, r *http.Request) {
	result, err := mc.MatchService.Unlike(r.Context(), PartyID(r), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Like removed", result)
}

// GetLikedMe handles fetching the parties who liked the caller
func (mc *MatchController) GetLikedMe(w http.ResponseWriter, r *http.Request) {
	parties, err := mc.MatchService.ListLikedMe(r.Context(), PartyID(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Likes fetched successfully", parties)
}

// GetMatches handles fetching the caller's current matches
func (mc *MatchController) GetMatches(w http.ResponseWriter, r *http.Request) {
	parties, err := mc.MatchService.ListMatches(r.Context(), PartyID(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Matches fetched successfully", parties)
}
