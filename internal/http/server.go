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

func NewServer(store club.ClubStore, recorder *ledger.Recorder, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Recorder:       recorder,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, s.adminMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/players", Chain(s.ListPlayersHandler(), paramsMiddleware, s.timed("players")))
	s.Router.Handle("GET /api/players/{id}", Chain(s.PlayerDetailHandler(), paramsMiddleware, s.timed("player")))
	s.Router.Handle("POST /api/players/{id}/token", Chain(s.SetTokenHandler(), paramsMiddleware, s.timed("player_token")))
	s.Router.Handle("POST /api/matches", Chain(s.RecordMatchHandler(), paramsMiddleware, s.timed("record_match")))
	s.Router.Handle("GET /api/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware, s.timed("leaderboard")))

	s.Router.Handle("DELETE /api/records/{id}", Chain(s.DeleteRecordHandler(), paramsMiddleware, s.adminMiddleware, s.timed("delete_record")))
	s.Router.Handle("POST /api/reset", Chain(s.ResetHandler(), paramsMiddleware, s.adminMiddleware, s.timed("reset")))
	s.Router.Handle("POST /api/leaderboard/post", Chain(s.PostLeaderboardHandler(), paramsMiddleware, s.adminMiddleware, s.timed("post_leaderboard")))

	s.Router.Handle("POST /pubsub/match-recorded", Chain(s.MatchRecordedPushHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
	s.Router.Handle("POST /slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
