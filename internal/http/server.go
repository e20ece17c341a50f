package http

import (
	"net/http"

	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/competitors"
	"github.com/tenring-club/steady-aim/internal/config"
	"github.com/tenring-club/steady-aim/internal/leaderboard"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/notifier"
	"github.com/tenring-club/steady-aim/internal/processor"
	"github.com/tenring-club/steady-aim/internal/pubsub"
	"github.com/tenring-club/steady-aim/internal/scores"
)

func NewServer(scoreStore scores.ScoreStore, competitionStore competition.Store, competitorStore competitors.Store, assembler *leaderboard.Assembler, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Scores:         scoreStore,
		Competitions:   competitionStore,
		Competitors:    competitorStore,
		Assembler:      assembler,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/submit-score", Chain(s.SubmitScoreHandler(), paramsMiddleware))
	s.Router.Handle("/verify-score", Chain(s.VerifyScoreHandler(), paramsMiddleware))
	s.Router.Handle("/scores", Chain(s.ListScoresHandler(), paramsMiddleware))
	s.Router.Handle("/competitors", Chain(s.ListCompetitorsHandler(), paramsMiddleware))
	s.Router.Handle("/competitions", Chain(s.CompetitionsHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/classification", Chain(s.ClassificationHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessScoresHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))
	s.Router.Handle("/slack/command/classification", Chain(s.ClassificationCommandHandler(), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
