package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/heonampyo/TennisTracker/internal/processor"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps ledger errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *ledger.ValidationError
	var notFoundErr *ledger.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
	default:
		log.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// period reads the optional ?year= filter.
func (s *Server) period(r *http.Request) (club.Period, error) {
	p := club.Period{Location: s.Cfg.Location}
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return p, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return p, &ledger.ValidationError{Field: "year", Reason: "must be a positive integer"}
	}
	p.Year = year
	return p, nil
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ListPlayersHandler returns every player with their stats, ranked.
func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := s.period(r)
		if err != nil {
			writeError(w, err)
			return
		}
		standings, err := club.Standings(r.Context(), s.Store, period, nil)
		if err != nil {
			requestLogger(r).Error("Failed to get players from store", "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) PlayerDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := s.period(r)
		if err != nil {
			writeError(w, err)
			return
		}
		summary, err := club.Summarize(r.Context(), s.Store, r.PathValue("id"), period, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) SetTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, &ledger.ValidationError{Field: "body", Reason: "invalid JSON"})
			return
		}
		token := strings.TrimSpace(req.Token)
		if token == "" {
			writeError(w, &ledger.ValidationError{Field: "token", Reason: "must not be empty"})
			return
		}
		playerID := r.PathValue("id")
		if err := s.Store.SetNotificationToken(r.Context(), playerID, token); err != nil {
			writeError(w, err)
			return
		}
		requestLogger(r).Info("Updated notification token", "playerID", playerID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "notification token updated"})
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Metrics.IncRecordFailures("validation")
			writeError(w, &ledger.ValidationError{Field: "body", Reason: "invalid JSON"})
			return
		}
		playerA, playerB, rawOutcome := req.Player1Name, req.Player2Name, req.Outcome
		if playerA == "" && playerB == "" && rawOutcome == "" {
			playerA, playerB, rawOutcome = req.Name, req.Opponent, req.Result
		}

		outcome, err := ledger.ParseOutcome(rawOutcome)
		if err != nil {
			s.Metrics.IncRecordFailures("validation")
			writeError(w, err)
			return
		}

		recA, recB, err := s.Recorder.RecordResult(r.Context(), playerA, playerB, outcome)
		if err != nil {
			var validationErr *ledger.ValidationError
			if errors.As(err, &validationErr) {
				s.Metrics.IncRecordFailures("validation")
			} else {
				s.Metrics.IncRecordFailures("persistence")
			}
			writeError(w, err)
			return
		}
		s.Metrics.IncMatchesRecorded()

		// Notifications are best effort and never fail the request.
		if err := s.Processor.PublishMatchRecorded(recA, recB, isDryRunFromContext(r)); err != nil {
			requestLogger(r).Warn("Failed to publish match recorded event", "error", err, "matchID", recA.MatchID)
		}

		writeJSON(w, http.StatusCreated, recordMatchResponse{
			Message: "match recorded",
			Records: []ledger.MatchRecord{*recA, *recB},
		})
	}
}

// LeaderboardHandler returns the ranked players that played in the period.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := s.period(r)
		if err != nil {
			writeError(w, err)
			return
		}
		standings, err := club.Leaderboard(r.Context(), s.Store, period, nil)
		if err != nil {
			requestLogger(r).Error("Failed to build leaderboard", "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) DeleteRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeError(w, &ledger.ValidationError{Field: "id", Reason: "must be an integer"})
			return
		}
		if err := s.Store.DeleteRecord(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		requestLogger(r).Info("Deleted match record", "recordID", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Warn("Received request to reset all players and records")
		if isDryRunFromContext(r) {
			requestLogger(r).Info("[Dry Run] Would reset the store")
			writeJSON(w, http.StatusOK, map[string]string{"message": "dry run, nothing deleted"})
			return
		}
		if err := s.Store.DeleteAll(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		requestLogger(r).Info("Store reset successfully")
		writeJSON(w, http.StatusOK, map[string]string{"message": "store reset"})
	}
}

// PostLeaderboardHandler posts the leaderboard to the club channel now.
func (s *Server) PostLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := s.period(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if period.Year == 0 {
			err = s.Processor.PostCurrentLeaderboard(r.Context(), isDryRunFromContext(r))
		} else {
			err = s.Processor.PostLeaderboard(r.Context(), period.Year, isDryRunFromContext(r))
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "leaderboard posted"})
	}
}

// MatchRecordedPushHandler receives match recorded events from a Pub/Sub push subscription.
func (s *Server) MatchRecordedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger(r).Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		requestLogger(r).Debug("Received match recorded message", "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			requestLogger(r).Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			requestLogger(r).Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event processor.MatchRecordedEvent
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if err := s.Processor.HandleMatchRecorded(r.Context(), event, isDryRunFromContext(r)); err != nil {
			requestLogger(r).Error("Failed to handle match recorded event", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
