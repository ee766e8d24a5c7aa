// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/dotvote/cliparse"
	"github.com/danielhkuo/dotvote/handlers"
	"github.com/danielhkuo/dotvote/middleware"
	"github.com/danielhkuo/dotvote/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votesHandler := handlers.NewVotesHandler(st, cfg)
	viewHandler := handlers.NewViewHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", middleware.MetricsHandler())

	// Votes
	mux.HandleFunc("GET /votes", middleware.Instrument(votesHandler.ListVotes))
	mux.HandleFunc("GET /votes/{id}", middleware.Instrument(votesHandler.GetVote))
	mux.HandleFunc("POST /votes", middleware.Instrument(votesHandler.UpsertVote))
	mux.HandleFunc("POST /votes/{id}/execute", middleware.Instrument(votesHandler.ExecuteVote))
	mux.HandleFunc("POST /votes/{id}/ballots", middleware.Instrument(votesHandler.SubmitBallot))

	// Views
	mux.HandleFunc("POST /views", middleware.Instrument(viewHandler.CreateView))
	mux.HandleFunc("GET /views/{id}", middleware.Instrument(viewHandler.GetView))
	mux.HandleFunc("DELETE /views/{id}", middleware.Instrument(viewHandler.DeleteView))
	mux.HandleFunc("POST /views/{id}/refresh", middleware.Instrument(viewHandler.RefreshView))
	mux.HandleFunc("PUT /views/{id}/filters", middleware.Instrument(viewHandler.SetFilters))
	mux.HandleFunc("DELETE /views/{id}/filters", middleware.Instrument(viewHandler.ClearFilters))
	mux.HandleFunc("POST /views/{id}/selected", middleware.Instrument(viewHandler.SelectVote))
	mux.HandleFunc("DELETE /views/{id}/selected", middleware.Instrument(viewHandler.CloseVote))
	mux.HandleFunc("POST /views/{id}/selected/ballot", middleware.Instrument(viewHandler.CastSelected))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dotvote API v1"))
	})

	return mux
}
