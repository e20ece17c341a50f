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

type Server struct {
	Scores         scores.ScoreStore
	Competitions   competition.Store
	Competitors    competitors.Store
	Assembler      *leaderboard.Assembler
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
