package http

import (
	"net/http"

	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/config"
	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/heonampyo/TennisTracker/internal/metrics"
	"github.com/heonampyo/TennisTracker/internal/processor"
	"github.com/heonampyo/TennisTracker/internal/pubsub"
)

type Server struct {
	Store          club.ClubStore
	Recorder       *ledger.Recorder
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// recordMatchRequest is the body of POST /api/matches. The name/opponent/result
// fields are the older form and are still accepted.
type recordMatchRequest struct {
	Player1Name string `json:"player1Name"`
	Player2Name string `json:"player2Name"`
	Outcome     string `json:"outcome"`

	Name     string `json:"name"`
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
}

type recordMatchResponse struct {
	Message string               `json:"message"`
	Records []ledger.MatchRecord `json:"records"`
}

type setTokenRequest struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// pushMessage is the envelope Cloud Pub/Sub uses for push deliveries.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"` // base64-encoded message payload
		MessageID string `json:"messageId"`
	} `json:"message"`
}
