package processor

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/competitors"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/pubsub"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// New creates a new Processor.
func New(scoreStore scores.ScoreStore, competitorStore competitors.Store, competitionStore competition.Store, classifier Classifier, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		scores:       scoreStore,
		competitors:  competitorStore,
		competitions: competitionStore,
		classifier:   classifier,
		notifier:     notifier,
		metrics:      metrics,
		pubsub:       pubsub,
	}
}

// ProcessScores fetches records that need processing and advances them through the state machine.
func (p *Processor) ProcessScores(dryRun bool) {
	log.Info("Starting score processing...")
	records, err := p.scores.ForProcessing()
	if err != nil {
		log.Error("Failed to get records for processing", "error", err)
		return
	}

	if len(records) == 0 {
		log.Info("No records to process.")
		return
	}

	log.Info("Found records to process", "count", len(records))
	for _, rec := range records {
		startTime := time.Now()
		p.processRecord(rec, dryRun)
		duration := time.Since(startTime).Milliseconds()
		p.metrics.ObserveProcessingDuration(float64(duration))
	}
	log.Info("Score processing finished.")
}

func (p *Processor) processRecord(rec *scores.Record, dryRun bool) {
	log.Info("Processing record", "scoreID", rec.ID, "initial_status", rec.ProcessingStatus, "verification", rec.EffectiveStatus())
	for {
		currentState := rec.ProcessingStatus
		log.Debug("Evaluating record state", "scoreID", rec.ID, "status", currentState)

		switch currentState {
		case scores.ProcessingNew:
			// Make sure the competitor exists in our database before anything else.
			if err := p.competitors.Upsert([]competitors.Profile{{ID: rec.CompetitorID}}); err != nil {
				log.Error("Failed to upsert competitor for record", "error", err, "scoreID", rec.ID)
			}

			switch rec.EffectiveStatus() {
			case scores.StatusRejected:
				log.Info("Record is rejected. Nothing to announce.", "scoreID", rec.ID)
				p.updateStatus(rec, scores.ProcessingCompleted, dryRun)
			case scores.StatusPending, scores.StatusFlagged:
				// Wait for a verifier to decide before announcing anything.
				log.Info("Record awaits verification. Skipping for now.", "scoreID", rec.ID, "verification", rec.EffectiveStatus())
			default:
				log.Info("Record is approved. Sending result notification.", "scoreID", rec.ID)
				if !dryRun {
					p.pubsub.SendMessage(pubsub.EventScoreSubmitted, rec)
				}
				meta, err := p.competitions.ByID(rec.CompetitionID)
				if err != nil {
					log.Error("Failed to look up competition for record", "error", err, "scoreID", rec.ID)
				}
				p.notifier.SendResultNotification(rec, meta, dryRun)
				p.updateStatus(rec, scores.ProcessingNotified, dryRun)
			}

		case scores.ProcessingNotified:
			log.Info("Record has been announced. Recomputing classification.", "scoreID", rec.ID, "competitorID", rec.CompetitorID)
			result, err := p.classifier.ClassifyCompetitor(rec.CompetitorID)
			if err != nil {
				log.Error("Failed to classify competitor", "error", err, "competitorID", rec.CompetitorID)
				p.updateStatus(rec, scores.ProcessingClassified, dryRun)
				continue
			}

			profile, err := p.competitors.Get(rec.CompetitorID)
			if err != nil {
				log.Error("Failed to look up competitor profile", "error", err, "competitorID", rec.CompetitorID)
				p.updateStatus(rec, scores.ProcessingClassified, dryRun)
				continue
			}

			lastTier := ""
			name := rec.CompetitorID
			if profile != nil {
				lastTier = profile.LastTier
				if profile.Name != "" {
					name = profile.Name
				}
			}

			if result.Label != lastTier {
				log.Info("Classification changed", "competitorID", rec.CompetitorID, "from", lastTier, "to", result.Label)
				p.notifier.SendTierChange(name, lastTier, result.Label, dryRun)
				if !dryRun {
					p.pubsub.SendMessage(pubsub.EventClassificationChanged, result)
					if err := p.competitors.SetLastTier(rec.CompetitorID, result.Label); err != nil {
						log.Error("Failed to record new tier", "error", err, "competitorID", rec.CompetitorID)
					}
				}
			}
			p.updateStatus(rec, scores.ProcessingClassified, dryRun)

		case scores.ProcessingClassified:
			log.Info("Record classified. Marking as complete.", "scoreID", rec.ID)
			p.metrics.IncScoresProcessed()
			p.updateStatus(rec, scores.ProcessingCompleted, dryRun)

		case scores.ProcessingCompleted:
			log.Debug("Record is complete. No further processing needed.", "scoreID", rec.ID)
			return

		default:
			log.Warn("Unknown processing status", "status", currentState, "scoreID", rec.ID)
			return
		}

		// If the status hasn't changed, we're done with this record for now.
		if rec.ProcessingStatus == currentState {
			log.Debug("Record state did not change. Finished processing for now.", "scoreID", rec.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing record", "scoreID", rec.ID, "final_status", rec.ProcessingStatus)
}

func (p *Processor) updateStatus(rec *scores.Record, newStatus scores.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update record status", "scoreID", rec.ID, "from", rec.ProcessingStatus, "to", newStatus)
		rec.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.scores.UpdateProcessingStatus(rec.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "scoreID", rec.ID)
	} else {
		log.Debug("Successfully updated status", "scoreID", rec.ID, "from", rec.ProcessingStatus, "to", newStatus)
		rec.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
