package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

var (
	year    int
	winner  int
	secret  string
	dryRun  bool
	timeout = 10 * time.Second
)

func init() {
	leaderboardCmd.Flags().IntVar(&year, "year", 0, "Only count matches from this year")
	playersCmd.Flags().IntVar(&year, "year", 0, "Only count matches from this year")
	playerCmd.Flags().IntVar(&year, "year", 0, "Only count matches from this year")

	recordCmd.Flags().IntVar(&winner, "winner", 0, "Which player won: 1 or 2")
	_ = recordCmd.MarkFlagRequired("winner")
	recordCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Record without sending notifications")

	for _, cmd := range []*cobra.Command{deleteRecordCmd, resetCmd} {
		cmd.Flags().StringVar(&secret, "secret", "", "The admin secret")
		_ = cmd.MarkFlagRequired("secret")
	}

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(deleteRecordCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/health", nil, nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List all players with their stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, withYear("/api/players"), nil, nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show one player's records and opponent stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, withYear("/api/players/"+url.PathEscape(args[0])), nil, nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the ranked leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, withYear("/api/leaderboard"), nil, nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <player1> <player2>",
	Short: "Record a match between two players",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var outcome string
		switch winner {
		case 1:
			outcome = "A_WINS"
		case 2:
			outcome = "B_WINS"
		default:
			return fmt.Errorf("--winner must be 1 or 2, got %d", winner)
		}
		body := map[string]string{
			"player1Name": args[0],
			"player2Name": args[1],
			"outcome":     outcome,
		}
		endpoint := "/api/matches"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(cmd, http.MethodPost, endpoint, body, nil)
	},
}

var deleteRecordCmd = &cobra.Command{
	Use:   "delete-record <id>",
	Short: "Delete one match record (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodDelete, "/api/records/"+url.PathEscape(args[0]), nil, adminHeader())
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all players and records (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodPost, "/api/reset", nil, adminHeader())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/metrics", nil, nil)
	},
}

func withYear(endpoint string) string {
	if year == 0 {
		return endpoint
	}
	return fmt.Sprintf("%s?year=%d", endpoint, year)
}

func adminHeader() http.Header {
	h := http.Header{}
	h.Set("X-Admin-Secret", secret)
	return h
}

func performRequest(cmd *cobra.Command, method, endpoint string, body any, header http.Header) error {
	target := host + endpoint
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Making %s request to %s\n", method, target)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(cmd.Context(), method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
