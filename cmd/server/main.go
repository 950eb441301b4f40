package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/eboto-mo/eboto-api/internal/adapters/handler/http"
	"github.com/eboto-mo/eboto-api/internal/adapters/mailer"
	"github.com/eboto-mo/eboto-api/internal/adapters/oauth/google"
	"github.com/eboto-mo/eboto-api/internal/adapters/repository/postgres"
	"github.com/eboto-mo/eboto-api/internal/core/services"
	"github.com/eboto-mo/eboto-api/internal/platform/config"
	"github.com/eboto-mo/eboto-api/internal/platform/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.FromEnv()

	db, err := sql.Open("postgres", config.DBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	electionRepo := postgres.NewElectionRepository(db)
	positionRepo := postgres.NewPositionRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	partylistRepo := postgres.NewPartylistRepository(db)
	voterRepo := postgres.NewVoterRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	m := metrics.New()

	var receiptMailer = mailer.NewLogMailer(logger)
	if cfg.SMTPHost != "" {
		receiptMailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
	}

	// Services
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier())
	userService := services.NewUserService(userRepo)
	electionService := services.NewElectionService(electionRepo, positionRepo, candidateRepo, partylistRepo, voterRepo, voteRepo, userRepo)
	rosterService := services.NewRosterService(electionRepo, positionRepo, candidateRepo, partylistRepo)
	voterService := services.NewVoterService(electionRepo, voterRepo)
	voteService := services.NewVoteService(electionRepo, positionRepo, candidateRepo, voterRepo, voteRepo, receiptMailer, m, logger)
	resultService := services.NewResultService(electionRepo, positionRepo, candidateRepo, partylistRepo, voterRepo, resultRepo)

	handler := http.NewHandler(http.Handlers{
		Auth:     http.NewAuthHandler(authService, cfg.AuthRedirectURL, cfg.CookieDomain, cfg.CookieSameSite),
		User:     http.NewUserHandler(userService),
		Election: http.NewElectionHandler(electionService),
		Roster:   http.NewRosterHandler(rosterService),
		Voter:    http.NewVoterHandler(voterService),
		Vote:     http.NewVoteHandler(voteService),
		Result:   http.NewResultHandler(resultService),
	}, http.NewAuthMiddleware(cfg.JWTSecret, logger))

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
