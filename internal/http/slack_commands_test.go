package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := []byte(form.Encode())
	req := httptest.NewRequest("POST", targetURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(body))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))
	return req
}

func setupSlackServer(t *testing.T) *testEnv {
	t.Helper()
	env := setupTestServer(t, "")
	env.server.Cfg.Slack.SigningSecret = testSlackSigningSecret
	env.record(t, "Kim", "Lee", "A_WINS")
	env.record(t, "Kim", "Park", "A_WINS")
	return env
}

func serveSlack(t *testing.T, env *testEnv, path, text, secret string) (*httptest.ResponseRecorder, slack.Message) {
	t.Helper()
	form := url.Values{"command": {"/cmd"}, "text": {text}, "team_id": {"T1"}, "user_id": {"U1"}}
	req := createSlackCommandRequest(t, path, form, secret)
	rr := httptest.NewRecorder()
	env.server.ServeHTTP(rr, req)

	var msg slack.Message
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	}
	return rr, msg
}

func TestLeaderboardCommandHandler(t *testing.T) {
	env := setupSlackServer(t)

	rr, msg := serveSlack(t, env, "/slack/command/leaderboard", "", testSlackSigningSecret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, slack.ResponseTypeInChannel, msg.ResponseType)
	assert.Contains(t, rr.Body.String(), "All-time Leaderboard")
	assert.Contains(t, rr.Body.String(), "Kim")

	rr, msg = serveSlack(t, env, "/slack/command/leaderboard", "soon", testSlackSigningSecret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, msg.Text, "Usage")
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	env := setupSlackServer(t)

	rr, _ := serveSlack(t, env, "/slack/command/player-stats", "Kim", testSlackSigningSecret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Stats for Kim")
	assert.Contains(t, rr.Body.String(), "100.0%")

	rr, _ = serveSlack(t, env, "/slack/command/player-stats", "kim", testSlackSigningSecret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No player named")

	rr, msg := serveSlack(t, env, "/slack/command/player-stats", "", testSlackSigningSecret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, msg.Text, "Usage")
}

func TestSlackVerifyMiddleware(t *testing.T) {
	t.Run("bad signature", func(t *testing.T) {
		env := setupSlackServer(t)
		rr, _ := serveSlack(t, env, "/slack/command/leaderboard", "", "wrong-secret")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("disabled without signing secret", func(t *testing.T) {
		env := setupTestServer(t, "")
		rr, _ := serveSlack(t, env, "/slack/command/leaderboard", "", testSlackSigningSecret)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
