// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/dotvote/auth"
	"github.com/danielhkuo/dotvote/cliparse"
	"github.com/danielhkuo/dotvote/filter"
	"github.com/danielhkuo/dotvote/middleware"
	"github.com/danielhkuo/dotvote/models"
	"github.com/danielhkuo/dotvote/store"
)

type VotesHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewVotesHandler(st *store.Store, cfg cliparse.Config) *VotesHandler {
	return &VotesHandler{store: st, cfg: cfg}
}

// ListVotes handles GET /votes?status=&outcome=&app=
func (h *VotesHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status, err := filter.ParseStatus(q.Get("status"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	outcome, err := filter.ParseOutcome(q.Get("outcome"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := filter.ParseAppType(q.Get("app"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	votes, err := h.store.Votes(r.Context())
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sel := filter.Selection{Status: status, Outcome: outcome, App: app}
	views := filter.Recompute(votes, h.store.VoteTime(), sel, time.Now(), nil)

	middleware.JSONResponse(w, http.StatusOK, models.VoteListResponse{
		Votes:    views,
		Total:    len(views),
		AllTotal: len(votes),
	})
}

// GetVote handles GET /votes/{id}
// With X-Voter-Address the options carry that voter's allocation.
func (h *VotesHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVoteID(w, r, "id")
	if !ok {
		return
	}
	voter, ok := optionalVoterAddress(w, r)
	if !ok {
		return
	}

	v, err := h.store.Vote(r.Context(), id)
	if errors.Is(err, store.ErrVoteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err, "vote_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	view := filter.Derive(v, h.store.VoteTime(), time.Now(), nil)
	middleware.JSONResponse(w, http.StatusOK, withVoterStakes(r.Context(), h.store, view, voter))
}

// UpsertVote handles POST /votes (admin)
// Syncs a vote record from the chain, replacing any existing record with the same id
func (h *VotesHandler) UpsertVote(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.UpsertVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.store.UpsertVote(r.Context(), req); err != nil {
		if errors.Is(err, store.ErrInvalidVote) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to upsert vote", "error", err, "vote_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save vote")
		return
	}

	v, err := h.store.Vote(r.Context(), req.ID)
	if err != nil {
		slog.Error("failed to reload vote", "error", err, "vote_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote synced", "vote_id", v.ID, "type", v.Data.Type)

	middleware.JSONResponse(w, http.StatusOK, filter.Derive(v, h.store.VoteTime(), time.Now(), nil))
}

// ExecuteVote handles POST /votes/{id}/execute (admin)
func (h *VotesHandler) ExecuteVote(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	id, ok := parseVoteID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.Execute(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrVoteNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
			return
		}
		slog.Error("failed to execute vote", "error", err, "vote_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	v, err := h.store.Vote(r.Context(), id)
	if err != nil {
		slog.Error("failed to reload vote", "error", err, "vote_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote executed", "vote_id", id)

	middleware.JSONResponse(w, http.StatusOK, filter.Derive(v, h.store.VoteTime(), time.Now(), nil))
}

// SubmitBallot handles POST /votes/{id}/ballots
func (h *VotesHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseVoteID(w, r, "id")
	if !ok {
		return
	}
	voter, ok := voterAddress(w, r)
	if !ok {
		return
	}

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot := &models.Ballot{
		VoteID: id,
		Voter:  voter,
		Stakes: req.Stakes,
		IPHash: auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt), // Reuse admin salt for IP hashing
	}

	isUpdate, err := h.store.CastVote(r.Context(), ballot)
	if err != nil {
		writeBallotError(w, err, id)
		return
	}

	message := "Ballot submitted successfully"
	if isUpdate {
		message = "Ballot updated successfully"
	}

	slog.Info("ballot submitted", "vote_id", id, "ballot_id", ballot.ID, "is_update", isUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		BallotID: ballot.ID,
		Message:  message,
	})
}
