package integration

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/eboto-mo/eboto-api/internal/adapters/handler/http"
	"github.com/eboto-mo/eboto-api/internal/adapters/mailer"
	repo "github.com/eboto-mo/eboto-api/internal/adapters/repository/postgres"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
	"github.com/eboto-mo/eboto-api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	ResultSvc   ports.ResultService
	SnapshotSvc ports.SnapshotService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	electionRepo := repo.NewElectionRepository(db)
	positionRepo := repo.NewPositionRepository(db)
	candidateRepo := repo.NewCandidateRepository(db)
	partylistRepo := repo.NewPartylistRepository(db)
	voterRepo := repo.NewVoterRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultRepo := repo.NewResultRepository(db)

	authSvc := services.NewAuthService(userRepo, authRepo, nil)
	userSvc := services.NewUserService(userRepo)
	electionSvc := services.NewElectionService(electionRepo, positionRepo, candidateRepo, partylistRepo, voterRepo, voteRepo, userRepo)
	rosterSvc := services.NewRosterService(electionRepo, positionRepo, candidateRepo, partylistRepo)
	voterSvc := services.NewVoterService(electionRepo, voterRepo)
	// Metrics stay nil here so repeated app setups do not re-register
	// collectors on the default prometheus registry.
	voteSvc := services.NewVoteService(electionRepo, positionRepo, candidateRepo, voterRepo, voteRepo, mailer.NewLogMailer(logger), nil, logger)
	resultSvc := services.NewResultService(electionRepo, positionRepo, candidateRepo, partylistRepo, voterRepo, resultRepo)
	snapshotSvc := services.NewSnapshotService(resultRepo, resultSvc, logger)

	router := handler.NewHandler(handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, "", "", http.SameSiteLaxMode),
		User:     handler.NewUserHandler(userSvc),
		Election: handler.NewElectionHandler(electionSvc),
		Roster:   handler.NewRosterHandler(rosterSvc),
		Voter:    handler.NewVoterHandler(voterSvc),
		Vote:     handler.NewVoteHandler(voteSvc),
		Result:   handler.NewResultHandler(resultSvc),
	}, handler.NewAuthMiddleware("test-secret", logger))

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		ResultSvc:   resultSvc,
		SnapshotSvc: snapshotSvc,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	require.NoError(t, app.DB.Close())
	require.NoError(t, app.DBContainer.Terminate(context.Background()))
}

// doJSON sends a JSON request with the access token cookie set when token is
// not empty.
func (app *TestApp) doJSON(t *testing.T, method, path, token string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, app.Server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// createUserAndToken inserts a user with the given email and returns a signed
// access token for it. An empty email gets a random one.
func createUserAndToken(t *testing.T, db *sql.DB, email string) string {
	t.Helper()

	userID := uuid.New()
	if email == "" {
		email = fmt.Sprintf("user-%s@example.com", userID)
	}
	name := fmt.Sprintf("User %s", userID)
	_, err := db.Exec("INSERT INTO users (id, email, name) VALUES ($1, $2, $3)", userID, email, name)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signedToken
}
