package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/eboto-mo/eboto-api/docs"
)

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Election *ElectionHandler
	Roster   *RosterHandler
	Voter    *VoterHandler
	Vote     *VoteHandler
	Result   *ResultHandler
}

func NewHandler(h Handlers, auth *AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/google/callback", h.Auth.GoogleCallback)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/me", h.User.GetMe)
		})

		r.Route("/elections", func(r chi.Router) {
			// Public pages still resolve the caller when a session exists, so
			// VOTER-publicity elections and voting status work.
			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Get("/{slug}", h.Election.GetElection)
				r.Get("/{slug}/realtime", h.Result.GetRealtimeResults)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)

				r.Post("/", h.Election.CreateElection)
				r.Get("/mine", h.Election.MyElections)

				r.Route("/{id}", func(r chi.Router) {
					r.Delete("/", h.Election.DeleteElection)

					r.Post("/commissioners", h.Election.AddCommissioner)
					r.Delete("/commissioners/{commissionerID}", h.Election.RemoveCommissioner)

					r.Post("/positions", h.Roster.CreatePosition)
					r.Delete("/positions/{positionID}", h.Roster.DeletePosition)
					r.Post("/candidates", h.Roster.CreateCandidate)
					r.Delete("/candidates/{candidateID}", h.Roster.DeleteCandidate)
					r.Post("/partylists", h.Roster.CreatePartylist)
					r.Get("/partylists", h.Roster.ListPartylists)
					r.Delete("/partylists/{partylistID}", h.Roster.DeletePartylist)

					r.Post("/voters", h.Voter.AddVoter)
					r.Get("/voters", h.Voter.ListVoters)
					r.Put("/voters/{voterID}", h.Voter.EditVoter)
					r.Delete("/voters/{voterID}", h.Voter.RemoveVoter)
					r.Post("/voter-fields", h.Voter.CreateVoterField)
					r.Get("/voter-stats", h.Result.GetVoterFieldStats)

					r.Post("/votes", h.Vote.CastBallot)
				})
			})
		})
	})

	return r
}
