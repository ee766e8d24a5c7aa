// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Vote: an on-chain dot-vote record (id + data payload)
  - VoteData: start date, app type, quorum inputs, options
  - VoteOption: option label and accumulated stake
  - VoteView: a vote plus fields derived at a point in time
  - Ballot: a voter's stake distribution across a vote's options

VoteView wraps a copy of the vote. Derived values (end date, open flag,
quorum progress, status) never get written back onto stored records.

# Request Types

  - UpsertVoteRequest: a full Vote record
  - SubmitBallotRequest: stakes ([]float64, one per option)
  - SetFiltersRequest: status, outcome, app_type (dropdown codes, 0 = All)
  - SelectVoteRequest: vote_id

# Response Types

  - VoteListResponse: votes, total
  - SubmitBallotResponse: ballot_id, message
  - CreateViewResponse: view_id
  - ViewResponse: view_id, filters, votes, total, selected
  - ErrorResponse: error, message

# Constants

Vote types:

	TypeAllocation    = "allocation"
	TypeCuration      = "curation"
	TypeInformational = "informational"

Vote statuses:

	StatusOpen       = "open"
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
	StatusExecuted   = "executed"
*/
package models
