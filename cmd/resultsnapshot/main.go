package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/eboto-mo/eboto-api/internal/adapters/repository/postgres"
	"github.com/eboto-mo/eboto-api/internal/core/services"
	"github.com/eboto-mo/eboto-api/internal/platform/config"
)

// Run periodically (cron) to persist final results for elections whose
// voting window has closed.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", config.DBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	electionRepo := postgres.NewElectionRepository(db)
	positionRepo := postgres.NewPositionRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	partylistRepo := postgres.NewPartylistRepository(db)
	voterRepo := postgres.NewVoterRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	resultService := services.NewResultService(electionRepo, positionRepo, candidateRepo, partylistRepo, voterRepo, resultRepo)
	snapshotService := services.NewSnapshotService(resultRepo, resultService, logger)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("starting result snapshot job")

	if err := snapshotService.GenerateDueResults(ctx); err != nil {
		log.Fatalf("Error generating result snapshots: %v", err)
	}

	logger.Info("result snapshot job completed")
}
