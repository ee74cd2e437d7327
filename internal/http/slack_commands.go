package http

import (
	"bytes"
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
	slackfmt "github.com/heonampyo/TennisTracker/internal/notifier/slack"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func slackUsage(text string) slack.Message {
	return slack.Message{Msg: slack.Msg{Text: text, ResponseType: slack.ResponseTypeEphemeral}}
}

// parseYearArg reads an optional year argument of a slash command.
func parseYearArg(arg string) (int, error) {
	if arg == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(arg)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%q is not a year", arg)
	}
	return year, nil
}

// slackVerifyMiddleware checks the Slack request signature. Slash commands
// are disabled when no signing secret is configured.
func (s *Server) slackVerifyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Cfg.Slack.SigningSecret == "" {
			http.Error(w, "Slack commands are disabled", http.StatusForbidden)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger(r).Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		verifier, err := slack.NewSecretsVerifier(r.Header, s.Cfg.Slack.SigningSecret)
		if err != nil {
			requestLogger(r).Warn("Rejected Slack request", "error", err)
			http.Error(w, "Invalid Slack signature", http.StatusUnauthorized)
			return
		}
		if _, err := verifier.Write(body); err != nil {
			http.Error(w, "Invalid Slack signature", http.StatusUnauthorized)
			return
		}
		if err := verifier.Ensure(); err != nil {
			requestLogger(r).Warn("Rejected Slack request", "error", err)
			http.Error(w, "Invalid Slack signature", http.StatusUnauthorized)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// LeaderboardCommandHandler serves `/leaderboard [year]`.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			requestLogger(r).Error("Failed to parse slash command", "error", err)
			http.Error(w, "Invalid slash command", http.StatusBadRequest)
			return
		}
		year, err := parseYearArg(strings.TrimSpace(cmd.Text))
		if err != nil {
			respondWithSlackMsg(w, slackUsage("Usage: /leaderboard [year]"))
			return
		}

		period := club.Period{Year: year, Location: s.Cfg.Location}
		standings, err := club.Leaderboard(r.Context(), s.Store, period, nil)
		if err != nil {
			requestLogger(r).Error("Failed to build leaderboard", "error", err)
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			return
		}

		title := "All-time Leaderboard"
		if year != 0 {
			title = fmt.Sprintf("%d Leaderboard", year)
		}
		msg := slackfmt.FormatLeaderboard(title, standings)
		msg.ResponseType = slack.ResponseTypeInChannel
		respondWithSlackMsg(w, msg)
	}
}

// PlayerStatsCommandHandler serves `/player-stats <name> [year]`.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			requestLogger(r).Error("Failed to parse slash command", "error", err)
			http.Error(w, "Invalid slash command", http.StatusBadRequest)
			return
		}
		args := strings.Fields(cmd.Text)
		if len(args) == 0 || len(args) > 2 {
			respondWithSlackMsg(w, slackUsage("Usage: /player-stats <name> [year]"))
			return
		}
		var yearArg string
		if len(args) == 2 {
			yearArg = args[1]
		}
		year, err := parseYearArg(yearArg)
		if err != nil {
			respondWithSlackMsg(w, slackUsage("Usage: /player-stats <name> [year]"))
			return
		}

		name := args[0]
		player, err := s.Store.FindPlayerByName(r.Context(), name)
		var notFound *ledger.NotFoundError
		if errors.As(err, &notFound) {
			respondWithSlackMsg(w, slackfmt.FormatPlayerNotFound(name))
			return
		}
		if err != nil {
			requestLogger(r).Error("Failed to look up player", "error", err, "name", name)
			http.Error(w, "Failed to look up player", http.StatusInternalServerError)
			return
		}

		summary, err := club.Summarize(r.Context(), s.Store, player.ID, club.Period{Year: year, Location: s.Cfg.Location}, nil)
		if err != nil {
			requestLogger(r).Error("Failed to summarize player", "error", err, "playerID", player.ID)
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			return
		}
		respondWithSlackMsg(w, slackfmt.FormatPlayerStats(summary.Player.Name, summary.Stats, summary.Opponents))
	}
}
