package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rendezvous_server/services"

	"github.com/charmbracelet/log"
)

type partyIDKey struct{}

// WithPartyID returns a context carrying the authenticated party id.
func WithPartyID(ctx context.Context, partyID string) context.Context {
	return context.WithValue(ctx, partyIDKey{}, partyID)
}

// PartyID returns the authenticated party id of the request.
func PartyID(r *http.Request) string {
	id, _ := r.Context().Value(partyIDKey{}).(string)
	return id
}

type errorBody struct {
	Kind    services.Kind `json:"kind"`
	Message string        `json:"message"`
}

// WriteJSONResponse writes v as JSON with the given status code.
func WriteJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeResult(w http.ResponseWriter, status int, message string, result interface{}) {
	WriteJSONResponse(w, status, map[string]interface{}{
		"message": message,
		"result":  result,
	})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind services.Kind) int {
	switch kind {
	case services.KindInvalidReference, services.KindSelfReference, services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidState:
		return http.StatusConflict
	case services.KindConfigurationMissing:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err in the {"error": {"kind", "message"}} shape. Internal
// details are logged and not sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := services.KindOf(err)
	status := StatusOf(kind)

	message := "internal error"
	var serviceErr *services.Error
	if errors.As(err, &serviceErr) && status < http.StatusInternalServerError {
		message = serviceErr.Message
	}
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "kind", kind, "error", err)
	} else {
		log.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "kind", kind, "error", err)
	}
	WriteJSONResponse(w, status, map[string]errorBody{"error": {Kind: kind, Message: message}})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, &services.Error{Kind: services.KindInvalidInput, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debug("Error decoding request body", "path", r.URL.Path, "error", err)
		badRequest(w, r, "invalid request payload")
		return false
	}
	return true
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Welcome to Rendezvous"})
}
