// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the dotvote API.

# Handler Types

  - VotesHandler: vote records, filtered listings and ballots
  - ViewHandler: stateful filtered views with a detail view

Handlers are created via constructor functions that accept the store and Config:

	votesHandler := handlers.NewVotesHandler(st, cfg)

# Votes

	GET  /votes?status=&outcome=&app= → ListVotes (stateless filtering)
	GET  /votes/{id}                  → GetVote
	POST /votes                       → UpsertVote (admin)
	POST /votes/{id}/execute          → ExecuteVote (admin)
	POST /votes/{id}/ballots          → SubmitBallot (create or update)

Filter names: status open|closed, outcome passed|rejected|enacted|pending,
app allocation(s)|curation(s)|informational. Missing means "All".

Admin operations require the X-Admin-Key header. Ballots require the
X-Voter-Address header; a voter has one ballot per vote and resubmitting
replaces it.

# Views

A view mirrors one mounted vote list: its three filters, the filtered
result and the selected vote.

	POST   /views                       → CreateView (filters start at All)
	GET    /views/{id}                  → GetView
	DELETE /views/{id}                  → DeleteView
	POST   /views/{id}/refresh          → RefreshView
	PUT    /views/{id}/filters          → SetFilters (dropdown codes, 0 = All)
	DELETE /views/{id}/filters          → ClearFilters
	POST   /views/{id}/selected         → SelectVote (unknown ids are ignored)
	DELETE /views/{id}/selected         → CloseVote
	POST   /views/{id}/selected/ballot  → CastSelected (closes the detail view)

Views are kept in memory and never persisted.
*/
package handlers
