// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/dotvote/auth"
	"github.com/danielhkuo/dotvote/cliparse"
	"github.com/danielhkuo/dotvote/filter"
	"github.com/danielhkuo/dotvote/middleware"
	"github.com/danielhkuo/dotvote/models"
	"github.com/danielhkuo/dotvote/store"
	"github.com/danielhkuo/dotvote/votelist"
)

// MaxViews bounds the number of mounted views held in memory
const MaxViews = 10000

// ViewHandler serves stateful vote list views. Views live in memory only
// and are gone after DELETE /views/{id} or a restart.
type ViewHandler struct {
	store *store.Store
	cfg   cliparse.Config

	mu    sync.Mutex
	views map[string]*votelist.VoteList
}

func NewViewHandler(st *store.Store, cfg cliparse.Config) *ViewHandler {
	return &ViewHandler{
		store: st,
		cfg:   cfg,
		views: make(map[string]*votelist.VoteList),
	}
}

// CreateView handles POST /views
func (h *ViewHandler) CreateView(w http.ResponseWriter, r *http.Request) {
	list := votelist.New(h.store, h.store)
	if err := list.Refresh(r.Context()); err != nil {
		slog.Error("failed to load votes for view", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.mu.Lock()
	if len(h.views) >= MaxViews {
		h.mu.Unlock()
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Too many open views")
		return
	}
	viewID := uuid.NewString()
	h.views[viewID] = list
	h.mu.Unlock()

	slog.Info("view created", "view_id", viewID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateViewResponse{ViewID: viewID})
}

// GetView handles GET /views/{id}
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.writeState(w, r, http.StatusOK, viewID, list)
}

// DeleteView handles DELETE /views/{id}
func (h *ViewHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	viewID, _, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	delete(h.views, viewID)
	h.mu.Unlock()

	slog.Info("view deleted", "view_id", viewID)
	w.WriteHeader(http.StatusNoContent)
}

// RefreshView handles POST /views/{id}/refresh
func (h *ViewHandler) RefreshView(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := list.Refresh(r.Context()); err != nil {
		slog.Error("failed to refresh view", "error", err, "view_id", viewID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	h.writeState(w, r, http.StatusOK, viewID, list)
}

// SetFilters handles PUT /views/{id}/filters
// Codes are dropdown indexes; 0 means "All". Either every code applies or none.
func (h *ViewHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.SetFiltersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var sel filter.Selection
	var err error
	if sel.Status, err = filter.StatusFromCode(req.Status); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if sel.Outcome, err = filter.OutcomeFromCode(req.Outcome); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if sel.App, err = filter.AppTypeFromCode(req.AppType); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	list.SetSelection(sel)

	h.writeState(w, r, http.StatusOK, viewID, list)
}

// ClearFilters handles DELETE /views/{id}/filters
func (h *ViewHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
	if !ok {
		return
	}
	list.ClearFilters()
	h.writeState(w, r, http.StatusOK, viewID, list)
}

// SelectVote handles POST /views/{id}/selected
// Unknown vote ids leave the view unchanged.
func (h *ViewHandler) SelectVote(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.SelectVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !list.OpenVote(req.VoteID) {
		slog.Debug("ignored selection of unknown vote", "view_id", viewID, "vote_id", req.VoteID)
	}
	h.writeState(w, r, http.StatusOK, viewID, list)
}

// CloseVote handles DELETE /views/{id}/selected
func (h *ViewHandler) CloseVote(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
	if !ok {
		return
	}
	list.CloseVote()
	h.writeState(w, r, http.StatusOK, viewID, list)
}

// CastSelected handles POST /views/{id}/selected/ballot
// On success the detail view closes and the list is reloaded.
func (h *ViewHandler) CastSelected(w http.ResponseWriter, r *http.Request) {
	viewID, list, ok := h.lookup(w, r)
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

	selected, _ := list.Selected()
	ballot, err := list.CastVote(r.Context(), &models.Ballot{
		Voter:  voter,
		Stakes: req.Stakes,
		IPHash: auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt),
	})
	if err != nil && ballot == nil {
		writeBallotError(w, err, selected.Vote.ID)
		return
	}
	if err != nil {
		// Ballot is stored; only the reload failed
		slog.Warn("failed to refresh view after ballot", "error", err, "view_id", viewID)
	}

	slog.Info("ballot submitted", "view_id", viewID, "vote_id", ballot.VoteID, "ballot_id", ballot.ID)

	h.writeState(w, r, http.StatusCreated, viewID, list)
}

func (h *ViewHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *votelist.VoteList, bool) {
	viewID := r.PathValue("id")
	if viewID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "view id is required")
		return "", nil, false
	}

	h.mu.Lock()
	list, ok := h.views[viewID]
	h.mu.Unlock()

	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "View not found")
		return "", nil, false
	}
	return viewID, list, true
}

// writeState responds with the view state. When the request carries a valid
// X-Voter-Address the selected vote is annotated with that voter's ballot.
func (h *ViewHandler) writeState(w http.ResponseWriter, r *http.Request, status int, viewID string, list *votelist.VoteList) {
	// State changes have already been applied, so a bad header only skips the annotation
	voter, _ := auth.NormalizeAddress(r.Header.Get("X-Voter-Address"))

	st := list.State()
	resp := models.ViewResponse{
		ViewID: viewID,
		Filters: models.FilterState{
			Status:  st.Selection.Status.String(),
			Outcome: st.Selection.Outcome.String(),
			AppType: st.Selection.App.String(),
		},
		Votes:    st.Visible,
		Total:    len(st.Visible),
		AllTotal: st.All,
	}
	if st.Selected != nil {
		selected := withVoterStakes(r.Context(), h.store, *st.Selected, voter)
		resp.Selected = &selected
	}
	middleware.JSONResponse(w, status, resp)
}
