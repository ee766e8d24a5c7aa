// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votelist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/dotvote/filter"
	"github.com/danielhkuo/dotvote/models"
)

var ErrNoSelection = errors.New("no vote selected")

// Provider supplies the current vote collection and the voting duration
type Provider interface {
	Votes(ctx context.Context) ([]models.Vote, error)
	VoteTime() time.Duration
}

// Caster submits a ballot for a vote
type Caster interface {
	CastVote(ctx context.Context, b *models.Ballot) (isUpdate bool, err error)
}

type Option func(*VoteList)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(l *VoteList) { l.now = now }
}

func WithEvaluator(ev filter.Evaluator) Option {
	return func(l *VoteList) { l.ev = ev }
}

// VoteList is a filtered view over a Provider's votes with an optional
// selected vote (the detail view). The filtered result is rebuilt from the
// last snapshot whenever the selection or the snapshot changes.
type VoteList struct {
	provider Provider
	caster   Caster
	now      func() time.Time
	ev       filter.Evaluator

	// refreshMu orders provider loads so the last load is the one installed
	refreshMu sync.Mutex

	mu       sync.Mutex
	votes    []models.Vote
	voteTime time.Duration
	sel      filter.Selection
	visible  []models.VoteView
	selected *int64
}

func New(p Provider, c Caster, opts ...Option) *VoteList {
	l := &VoteList{
		provider: p,
		caster:   c,
		now:      time.Now,
		ev:       filter.DefaultEvaluator{},
		visible:  []models.VoteView{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Refresh reloads the vote collection from the provider and recomputes
func (l *VoteList) Refresh(ctx context.Context) error {
	l.refreshMu.Lock()
	defer l.refreshMu.Unlock()

	votes, err := l.provider.Votes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load votes: %w", err)
	}
	voteTime := l.provider.VoteTime()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.votes = votes
	l.voteTime = voteTime
	// A selected vote that left the collection closes the detail view
	if l.selected != nil && !l.containsLocked(*l.selected) {
		l.selected = nil
	}
	l.recomputeLocked()
	return nil
}

// SelectStatus sets the status filter from its dropdown code; 0 clears it
func (l *VoteList) SelectStatus(code int) error {
	s, err := filter.StatusFromCode(code)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sel.Status = s
	l.recomputeLocked()
	return nil
}

// SelectOutcome sets the outcome filter from its dropdown code; 0 clears it
func (l *VoteList) SelectOutcome(code int) error {
	o, err := filter.OutcomeFromCode(code)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sel.Outcome = o
	l.recomputeLocked()
	return nil
}

// SelectAppType sets the app type filter from its dropdown code; 0 clears it
func (l *VoteList) SelectAppType(code int) error {
	a, err := filter.AppTypeFromCode(code)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sel.App = a
	l.recomputeLocked()
	return nil
}

// ClearFilters resets all three filters to "All"
func (l *VoteList) ClearFilters() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sel = filter.Selection{}
	l.recomputeLocked()
}

// SetSelection replaces all three filters in one step
func (l *VoteList) SetSelection(sel filter.Selection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sel = sel
	l.recomputeLocked()
}

func (l *VoteList) Selection() filter.Selection {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sel
}

// Visible returns the current filtered votes
func (l *VoteList) Visible() []models.VoteView {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.VoteView, len(l.visible))
	copy(out, l.visible)
	return out
}

// Snapshot returns the unfiltered collection from the last refresh
func (l *VoteList) Snapshot() []models.Vote {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Vote, len(l.votes))
	for i, v := range l.votes {
		out[i] = v.Clone()
	}
	return out
}

// OpenVote enters the detail view for id. Ids missing from the current
// collection are ignored and false is returned.
func (l *VoteList) OpenVote(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.containsLocked(id) {
		return false
	}
	l.selected = &id
	return true
}

func (l *VoteList) CloseVote() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selected = nil
}

// State is a consistent read of a VoteList
type State struct {
	Selection filter.Selection
	Visible   []models.VoteView
	Selected  *models.VoteView
	// All is the size of the unfiltered collection
	All       int
}

// State returns the filters, visible votes and detail view under one lock
func (l *VoteList) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := State{
		Selection: l.sel,
		Visible:   make([]models.VoteView, len(l.visible)),
		All:       len(l.votes),
	}
	copy(st.Visible, l.visible)
	if v, ok := l.selectedLocked(); ok {
		st.Selected = &v
	}
	return st
}

// Selected returns the vote in the detail view, derived as of now
func (l *VoteList) Selected() (models.VoteView, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selectedLocked()
}

func (l *VoteList) selectedLocked() (models.VoteView, bool) {
	if l.selected == nil {
		return models.VoteView{}, false
	}
	for _, v := range l.votes {
		if v.ID == *l.selected {
			return filter.Derive(v, l.voteTime, l.now(), l.ev), true
		}
	}
	return models.VoteView{}, false
}

// CastVote submits b for the selected vote; b.VoteID is set from the
// selection. On success the detail view closes and the collection is
// reloaded; on failure the error is returned and the detail view stays open.
// A nil ballot with an error means nothing was stored.
func (l *VoteList) CastVote(ctx context.Context, b *models.Ballot) (*models.Ballot, error) {
	l.mu.Lock()
	if l.selected == nil {
		l.mu.Unlock()
		return nil, ErrNoSelection
	}
	voteID := *l.selected
	l.mu.Unlock()

	b.VoteID = voteID
	if _, err := l.caster.CastVote(ctx, b); err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.selected != nil && *l.selected == voteID {
		l.selected = nil
	}
	l.mu.Unlock()

	if err := l.Refresh(ctx); err != nil {
		return b, err
	}
	return b, nil
}

func (l *VoteList) containsLocked(id int64) bool {
	for _, v := range l.votes {
		if v.ID == id {
			return true
		}
	}
	return false
}

func (l *VoteList) recomputeLocked() {
	l.visible = filter.Recompute(l.votes, l.voteTime, l.sel, l.now(), l.ev)
}
