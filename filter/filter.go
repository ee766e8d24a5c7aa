// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dotvote/models"
)

// Evaluator derives quorum progress and status for a vote
type Evaluator interface {
	QuorumProgress(data models.VoteData) float64
	VoteStatus(v models.Vote, open bool) models.VoteStatus
}

// Derive builds the view of a single vote as of now
func Derive(v models.Vote, voteTime time.Duration, now time.Time, ev Evaluator) models.VoteView {
	if ev == nil {
		ev = DefaultEvaluator{}
	}

	endDate := v.Data.StartDate.Add(voteTime)
	open := now.Before(endDate)

	vote := v.Clone()
	return models.VoteView{
		Vote:           vote,
		EndDate:        endDate,
		Open:           open,
		QuorumProgress: ev.QuorumProgress(v.Data),
		Status:         ev.VoteStatus(v, open),
		EndsIn:         humanize.RelTime(endDate, now, "ago", "from now"),
		Options:        OptionViews(vote.Data.Options),
	}
}

// Recompute returns the views of all votes passing every active filter in sel,
// in input order. The input slice and its records are left untouched.
func Recompute(votes []models.Vote, voteTime time.Duration, sel Selection, now time.Time, ev Evaluator) []models.VoteView {
	result := make([]models.VoteView, 0, len(votes))
	for _, v := range votes {
		view := Derive(v, voteTime, now, ev)
		if sel.Match(view) {
			result = append(result, view)
		}
	}
	return result
}

// Match reports whether a derived vote passes all active filters
func (s Selection) Match(view models.VoteView) bool {
	return matchStatus(s.Status, view) &&
		matchApp(s.App, view) &&
		matchOutcome(s.Outcome, view)
}

func matchStatus(f Status, view models.VoteView) bool {
	switch f {
	case StatusOpen:
		return view.Open
	case StatusClosed:
		return !view.Open
	}
	return true
}

func matchApp(f AppType, view models.VoteView) bool {
	if f == AppAll {
		return true
	}
	return view.Vote.Data.Type == f.VoteType()
}

// Outcome filters only apply to closed votes
func matchOutcome(f Outcome, view models.VoteView) bool {
	if f == OutcomeAll {
		return true
	}
	if view.Open {
		return false
	}

	switch f {
	case OutcomePassed:
		return view.Status == models.StatusSuccessful || view.Status == models.StatusExecuted
	case OutcomeRejected:
		return view.Status == models.StatusFailed
	case OutcomeEnacted:
		return view.Status == models.StatusExecuted
	case OutcomePending:
		return view.Status == models.StatusSuccessful
	}
	return false
}
