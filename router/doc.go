// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the dotvote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Votes:

	GET  /votes              - Filtered list (status, outcome, app query params)
	GET  /votes/{id}         - One vote with derived fields
	POST /votes              - Sync a vote record (admin)
	POST /votes/{id}/execute - Mark executed (admin)
	POST /votes/{id}/ballots - Submit/update ballot

Views:

	POST   /views                      - Mount a view
	GET    /views/{id}                 - Filters, visible votes, selected vote
	DELETE /views/{id}                 - Unmount
	POST   /views/{id}/refresh         - Reload votes
	PUT    /views/{id}/filters         - Set filters
	DELETE /views/{id}/filters         - Clear filters
	POST   /views/{id}/selected        - Open detail view
	DELETE /views/{id}/selected        - Close detail view
	POST   /views/{id}/selected/ballot - Vote on the selected vote

Every API route is wrapped with middleware.Instrument (logging and metrics).
*/
package router
