package routes

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"rendezvous_server/controllers"
	"rendezvous_server/services"

	"github.com/charmbracelet/log"
)

// PartyIDHeader carries the party id established by the identity gateway.
const PartyIDHeader = "X-Party-ID"

// authMiddleware rejects requests without an authenticated party and puts the
// party id in the request context.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		partyID := strings.TrimSpace(r.Header.Get(PartyIDHeader))
		if partyID == "" {
			controllers.WriteJSONResponse(w, http.StatusUnauthorized, map[string]map[string]string{
				"error": {"kind": "unauthenticated", "message": "missing " + PartyIDHeader + " header"},
			})
			return
		}
		if err := services.ValidatePartyID(partyID); err != nil {
			controllers.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(controllers.WithPartyID(r.Context(), partyID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades on /socket.io/ pass through the recorder.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// loggingMiddleware logs every request with its status and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "status", rec.status, "duration", time.Since(start))
	})
}
