// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/dotvote/auth"
	"github.com/danielhkuo/dotvote/cliparse"
	"github.com/danielhkuo/dotvote/filter"
	"github.com/danielhkuo/dotvote/middleware"
	"github.com/danielhkuo/dotvote/models"
	"github.com/danielhkuo/dotvote/store"
	"github.com/danielhkuo/dotvote/votelist"
)

// parseVoteID reads the {id} path value. Writes a 400 and returns false on failure.
func parseVoteID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid vote id")
		return 0, false
	}
	return id, true
}

// requireAdmin checks the X-Admin-Key header. Writes a 401 and returns false on failure.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return false
	}
	if err := auth.ValidateAdminKey(auth.AdminScope, adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// voterAddress reads the X-Voter-Address header. Writes an error and returns false on failure.
func voterAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get("X-Voter-Address")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Address header required")
		return "", false
	}
	addr, err := auth.NormalizeAddress(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid voter address")
		return "", false
	}
	return addr, true
}

// optionalVoterAddress reads X-Voter-Address when present. An absent header
// yields "" and true; a malformed one writes a 400 and returns false.
func optionalVoterAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Header.Get("X-Voter-Address") == "" {
		return "", true
	}
	return voterAddress(w, r)
}

// withVoterStakes annotates view with voter's ballot. Lookup failures are
// logged and the view is returned without annotation.
func withVoterStakes(ctx context.Context, st *store.Store, view models.VoteView, voter string) models.VoteView {
	if voter == "" {
		return view
	}
	stakes, err := st.BallotStakes(ctx, view.Vote.ID, voter)
	if err != nil {
		slog.Warn("failed to load voter stakes", "error", err, "vote_id", view.Vote.ID)
		return view
	}
	return filter.WithUserStakes(view, stakes)
}

// writeBallotError maps ballot submission failures to responses
func writeBallotError(w http.ResponseWriter, err error, voteID int64) {
	switch {
	case errors.Is(err, store.ErrVoteNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
	case errors.Is(err, store.ErrVoteClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Vote is not open for voting")
	case errors.Is(err, store.ErrInvalidStakes):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, votelist.ErrNoSelection):
		middleware.ErrorResponse(w, http.StatusConflict, "No vote selected")
	default:
		slog.Error("failed to submit ballot", "error", err, "vote_id", voteID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
	}
}
