package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/tenring-club/steady-aim/internal/scores"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyCompetitions := []struct {
		ID           string
		Name         string
		ShotsPerCard int
		Format       string
		Type         string
	}{
		{"comp-1", "Seeder Spring Open", 25, "prone", "outdoor"},
		{"comp-2", "Seeder Winter Indoor", 10, "standing", "indoor"},
		{"comp-3", "Seeder Benchrest Cup", 25, "benchrest", "indoor"},
	}

	for _, c := range dummyCompetitions {
		_, err := db.Exec("INSERT OR IGNORE INTO competitions (id, name, shots_per_card, format, competition_type) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Name, c.ShotsPerCard, c.Format, c.Type)
		if err != nil {
			log.Fatalf("Failed to insert dummy competition %s: %s", c.Name, err)
		}
	}
	log.Info("Ensured dummy competitions exist.")

	dummyCompetitors := []struct {
		ID   string
		Name string
	}{
		{"competitor-1", "Seeder Shooter A"},
		{"competitor-2", "Seeder Shooter B"},
		{"competitor-3", "Seeder Shooter C"},
		{"competitor-4", "Seeder Shooter D"},
	}

	for _, c := range dummyCompetitors {
		_, err := db.Exec("INSERT OR IGNORE INTO competitors (id, name, created_at) VALUES (?, ?, ?)",
			c.ID, c.Name, time.Now().UnixMilli())
		if err != nil {
			log.Fatalf("Failed to insert dummy competitor %s: %s", c.Name, err)
		}
	}
	log.Info("Ensured dummy competitors exist.")

	const batchSize = 100 // Insert 100 score cards at a time
	const numScores = 10000

	log.Info("Preparing to insert dummy score cards...", "total", numScores, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*11) // 11 columns per score

	for i := 0; i < numScores; i++ {
		comp := dummyCompetitions[rand.Intn(len(dummyCompetitions))]
		competitor := dummyCompetitors[rand.Intn(len(dummyCompetitors))]
		submittedAt := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		shots := make([]scores.Shot, comp.ShotsPerCard)
		points := 0
		xCount := 0
		perfect := 0
		for j := range shots {
			value := 6 + rand.Intn(5)
			isX := value == 10 && rand.Intn(3) == 0
			shots[j] = scores.Shot{Value: value, IsX: isX}
			points += value
			if isX {
				xCount++
			}
			if value == 10 {
				perfect++
			}
		}
		shotsJSON, _ := json.Marshal(shots)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			competitor.ID,
			comp.ID,
			points,
			string(shotsJSON),
			xCount,
			perfect,
			float64(comp.ShotsPerCard)*(20+rand.Float64()*40),
			"approved",
			submittedAt.UnixMilli(),
			"COMPLETED",
		)

		if (i+1)%batchSize == 0 || (i+1) == numScores {
			stmt := fmt.Sprintf(`
				INSERT INTO scores (id, competitor_id, competition_id, points, shots_json, x_count,
					perfect_shots, total_time, verification_status, submitted_at, processing_status)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*11)
			log.Info("Inserted batch", "completed", i+1, "total", numScores)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy score cards.", "duration", duration)
}
