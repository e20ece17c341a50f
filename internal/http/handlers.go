package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/pubsub"
	"github.com/tenring-club/steady-aim/internal/scores"
	"github.com/tenring-club/steady-aim/internal/scoring"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		competitionID := r.URL.Query().Get("competitionID")
		if competitionID != "" {
			log.Info("Received request to clear a specific competition", "competitionID", competitionID)
			s.Scores.ClearCompetition(competitionID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared competition %s from store!", competitionID)
			log.Info("Successfully cleared competition from store", "competitionID", competitionID)
		} else {
			log.Info("Received request to clear entire store")
			s.Scores.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// submitScoreRequest is the JSON body accepted by the submit-score endpoint.
// Timing flows in as per-shot times; the record's total time is always
// derived from those, never taken from the client.
type submitScoreRequest struct {
	CompetitorID  string        `json:"competitor_id"`
	CompetitionID string        `json:"competition_id"`
	Shots         []scores.Shot `json:"shots"`
}

func (s *Server) SubmitScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		isDryRun := isDryRunFromContext(r)

		var req submitScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode submit-score body", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		meta, err := s.Competitions.ByID(req.CompetitionID)
		if err != nil {
			log.Error("Failed to look up competition", "error", err, "competitionID", req.CompetitionID)
			http.Error(w, "Failed to look up competition", http.StatusInternalServerError)
			return
		}

		rec, err := scoring.BuildRecord(req.CompetitorID, req.CompetitionID, req.Shots, meta)
		if err != nil {
			s.Metrics.IncSubmissionsRejected()
			log.Warn("Rejected score submission", "error", err, "competitorID", req.CompetitorID)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !isDryRun {
			if err := s.Scores.Insert(rec); err != nil {
				log.Error("Failed to insert score record", "error", err, "scoreID", rec.ID)
				http.Error(w, "Failed to save score", http.StatusInternalServerError)
				return
			}
		} else {
			log.Info("[Dry Run] Would have inserted score record", "scoreID", rec.ID)
		}
		s.Metrics.IncSubmissions()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(rec); err != nil {
			log.Error("Failed to encode score record to JSON", "error", err)
		}
	}
}

// verifyScoreRequest is the JSON body accepted by the verify-score endpoint.
type verifyScoreRequest struct {
	ScoreID    string `json:"score_id"`
	Status     string `json:"status"`
	VerifiedBy string `json:"verified_by"`
}

func (s *Server) VerifyScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		isDryRun := isDryRunFromContext(r)

		var req verifyScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode verify-score body", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		status := scores.VerificationStatus(req.Status)
		switch status {
		case scores.StatusApproved, scores.StatusRejected, scores.StatusFlagged:
		default:
			http.Error(w, "Invalid verification status", http.StatusBadRequest)
			return
		}

		rec, err := s.Scores.Get(req.ScoreID)
		if err != nil {
			log.Error("Failed to look up score record", "error", err, "scoreID", req.ScoreID)
			http.Error(w, "Failed to look up score", http.StatusInternalServerError)
			return
		}
		if rec == nil {
			http.Error(w, "Score not found", http.StatusNotFound)
			return
		}

		if isDryRun {
			log.Info("[Dry Run] Would update verification status", "scoreID", req.ScoreID, "from", rec.EffectiveStatus(), "to", status)
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK")
			return
		}

		if err := s.Scores.UpdateVerificationStatus(req.ScoreID, status, req.VerifiedBy); err != nil {
			log.Error("Failed to update verification status", "error", err, "scoreID", req.ScoreID)
			http.Error(w, "Failed to update verification status", http.StatusInternalServerError)
			return
		}

		// An approval re-enters the record into the processing pipeline so it
		// gets announced and the competitor reclassified.
		if status == scores.StatusApproved {
			if err := s.Scores.UpdateProcessingStatus(req.ScoreID, scores.ProcessingNew); err != nil {
				log.Error("Failed to reset processing status", "error", err, "scoreID", req.ScoreID)
			}
			s.pubsub.SendMessage(pubsub.EventScoreVerified, rec)
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) ListScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		competitorID := r.URL.Query().Get("competitor")

		var records []*scores.Record
		var err error
		if competitorID != "" {
			records, err = s.Scores.ByCompetitor(competitorID)
		} else {
			records, err = s.Scores.All()
		}
		if err != nil {
			http.Error(w, "Failed to get scores", http.StatusInternalServerError)
			log.Error("Failed to get scores from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			log.Error("Failed to encode scores to JSON", "error", err)
		}
	}
}

func (s *Server) ListCompetitorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := s.Competitors.All()
		if err != nil {
			http.Error(w, "Failed to get competitors", http.StatusInternalServerError)
			log.Error("Failed to get competitors from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(profiles); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) CompetitionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var meta competition.Meta
			if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if meta.ID == "" {
				http.Error(w, "Competition id is required", http.StatusBadRequest)
				return
			}
			if meta.Format != "" && !competition.ValidFormat(meta.Format) {
				http.Error(w, "Invalid competition format", http.StatusBadRequest)
				return
			}
			if meta.Type != "" && !competition.ValidType(meta.Type) {
				http.Error(w, "Invalid competition type", http.StatusBadRequest)
				return
			}
			if err := s.Competitions.Upsert(meta); err != nil {
				http.Error(w, "Failed to save competition", http.StatusInternalServerError)
				log.Error("Failed to upsert competition", "error", err, "competitionID", meta.ID)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK")
			return
		}

		metas, err := s.Competitions.All()
		if err != nil {
			http.Error(w, "Failed to get competitions", http.StatusInternalServerError)
			log.Error("Failed to get competitions from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metas); err != nil {
			log.Error("Failed to encode competitions to JSON", "error", err)
		}
	}
}

// LeaderboardHandler serves an assembled leaderboard for the requested scope.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := r.URL.Query().Get("scope")
		if scope == "" {
			scope = "global"
		}

		rows, err := s.Assembler.Assemble(scope)
		if err != nil {
			http.Error(w, "Invalid leaderboard scope", http.StatusBadRequest)
			log.Warn("Failed to assemble leaderboard", "error", err, "scope", scope)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			log.Error("Failed to encode leaderboard to JSON", "error", err)
		}
	}
}

// ClassificationHandler serves the classification for a single competitor,
// looked up by id or by name.
func (s *Server) ClassificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("competitor")
		if query == "" {
			http.Error(w, "Competitor is required", http.StatusBadRequest)
			return
		}

		competitorID, err := s.resolveCompetitor(query)
		if err != nil {
			http.Error(w, "Failed to look up competitor", http.StatusInternalServerError)
			log.Error("Failed to look up competitor", "error", err, "query", query)
			return
		}
		if competitorID == "" {
			http.Error(w, "Competitor not found", http.StatusNotFound)
			return
		}

		result, err := s.Assembler.ClassifyCompetitor(competitorID)
		if err != nil {
			http.Error(w, "Failed to classify competitor", http.StatusInternalServerError)
			log.Error("Failed to classify competitor", "error", err, "competitorID", competitorID)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Error("Failed to encode classification to JSON", "error", err)
		}
	}
}

// resolveCompetitor maps a user supplied query to a competitor id, trying the
// id first and falling back to a name lookup. Returns "" when nothing matches.
func (s *Server) resolveCompetitor(query string) (string, error) {
	profile, err := s.Competitors.Get(query)
	if err != nil {
		return "", err
	}
	if profile != nil {
		return profile.ID, nil
	}
	profile, err = s.Competitors.GetByName(query)
	if err != nil {
		return "", err
	}
	if profile != nil {
		return profile.ID, nil
	}
	return "", nil
}

func (s *Server) ProcessScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting score processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessScores(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Score processing completed.")
		log.Info("Score processing finished.")
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		scope := r.FormValue("text")
		if scope == "" {
			scope = "global"
		}

		rows, err := s.Assembler.Assemble(scope)
		if err != nil {
			http.Error(w, "Invalid leaderboard scope", http.StatusBadRequest)
			log.Warn("Failed to assemble leaderboard for slash command", "error", err, "scope", scope)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(scope, rows)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// ClassificationCommandHandler returns a handler for the /classification Slack command.
func (s *Server) ClassificationCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		competitorName := r.FormValue("text")
		if competitorName == "" {
			http.Error(w, "Competitor name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received classification command", "competitor", competitorName)

		var msg any
		competitorID, err := s.resolveCompetitor(competitorName)
		if err == nil && competitorID == "" {
			err = errors.New("competitor not found")
		}
		if err != nil {
			log.Warn("Could not find competitor", "competitor", competitorName, "error", err)
			msg, err = s.Notifier.FormatCompetitorNotFoundResponse(competitorName)
		} else {
			var result classify.Result
			result, err = s.Assembler.ClassifyCompetitor(competitorID)
			if err == nil {
				profile, profileErr := s.Competitors.Get(competitorID)
				name := competitorName
				if profileErr == nil && profile != nil && profile.Name != "" {
					name = profile.Name
				}
				msg, err = s.Notifier.FormatClassificationResponse(name, result)
			}
		}

		if err != nil {
			http.Error(w, "Failed to format classification", http.StatusInternalServerError)
			log.Error("Failed to format classification", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
