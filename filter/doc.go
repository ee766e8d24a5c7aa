// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filter derives display data for dot-votes and filters them.

# Selections

Three independent filters, each with an explicit "All" variant as its zero value:

	Status:  All, Open, Closed
	Outcome: All, Passed, Rejected, Enacted, Pending
	AppType: All, Allocations, Curations, Informational

The numeric value of each variant is its dropdown index, so index 0 is always "All".
Use StatusFromCode / ParseStatus (and the Outcome / AppType equivalents) to build
them from client input.

# Recompute

	views := filter.Recompute(votes, 72*time.Hour, sel, time.Now(), nil)

Every vote closes at StartDate + voteTime. Filters are ANDed:

  - Status: open requires now < end date, closed the opposite
  - AppType: exact match on the vote data type
  - Outcome: never matches an open vote; on closed votes
    passed = successful or executed, rejected = failed,
    enacted = executed, pending = successful (not executed)

The result keeps input order and holds copies. Input records are never modified.

# Evaluator

Quorum progress and status come from an Evaluator. DefaultEvaluator uses
TotalVoters / (MinAcceptQuorum * VotingPower) and reports executed, open,
successful (quorum reached) or failed, in that order of precedence.
*/
package filter
