package controllers

import (
	"net/http"

	"rendezvous_server/models"
	"rendezvous_server/services"

	"github.com/gorilla/mux"
)

type ProfileController struct {
	ProfileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// ListProfiles returns every active profile except the caller's
func (pc *ProfileController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := pc.ProfileService.ListProfiles(r.Context(), PartyID(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Profiles fetched successfully", profiles)
}

// GetProfile returns one profile as seen by the caller
func (pc *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := pc.ProfileService.GetProfile(r.Context(), PartyID(r), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Profile fetched successfully", profile)
}

// SaveProfile creates or updates the caller's profile
func (pc *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var fields models.ProfileFields
	if !decodeJSON(w, r, &fields) {
		return
	}
	profile, err := pc.ProfileService.SaveProfile(r.Context(), PartyID(r), fields)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Profile saved successfully", profile)
}
