package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rendezvous_server/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := map[services.Kind]int{
		services.KindInvalidReference:      http.StatusBadRequest,
		services.KindSelfReference:         http.StatusBadRequest,
		services.KindInvalidInput:          http.StatusBadRequest,
		services.KindNotFound:              http.StatusNotFound,
		services.KindInvalidState:          http.StatusConflict,
		services.KindConfigurationMissing:  http.StatusServiceUnavailable,
		services.KindInternalInconsistency: http.StatusInternalServerError,
		services.KindInternal:              http.StatusInternalServerError,
	}
	for kind, status := range tests {
		assert.Equal(t, status, StatusOf(kind), string(kind))
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/match/matches", nil)

	rr := httptest.NewRecorder()
	WriteError(rr, req, fmt.Errorf("failed to query table 'Parties': %w", errors.New("credentials expired")))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":{"kind":"internal","message":"internal error"}}`, rr.Body.String())

	rr = httptest.NewRecorder()
	WriteError(rr, req, &services.Error{Kind: services.KindInvalidState, Message: "you already liked bob"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error":{"kind":"invalid_state","message":"you already liked bob"}}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
