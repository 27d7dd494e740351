package http

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/pubsub"
)

// decodePush unwraps a Pub/Sub push delivery into out. It writes the error
// response itself and reports whether the handler should continue.
func (s *Server) decodePush(w http.ResponseWriter, r *http.Request, out any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	log.Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	rawData, err := pubsub.DecodePushRequest(bodyBytes)
	if err != nil {
		log.Error("Failed to decode push request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := s.pubsub.ProcessMessage(rawData, out); err != nil {
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return false
	}
	return true
}

// MatchRecordedPushHandler announces a recorded match in Slack. A failed
// send answers 500 so Pub/Sub redelivers.
func (s *Server) MatchRecordedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event league.MatchRecordedEvent
		if !s.decodePush(w, r, &event) {
			return
		}
		if err := s.Notifier.SendMatchResult(event, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce match", "match", event.Match.ID, "error", err)
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) TournamentFinishedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event league.TournamentFinishedEvent
		if !s.decodePush(w, r, &event) {
			return
		}
		if err := s.Notifier.SendTournamentResult(event, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce tournament result", "tournament", event.TournamentID, "error", err)
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
