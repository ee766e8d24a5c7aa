// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the dotvote API server.

dotvote serves dot-voting proposals: votes where participants spread a stake
budget across several options. It derives each vote's closing time, quorum
progress and status, filters lists of votes by status, outcome and app type,
and records ballots.

# Starting the Server

	ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -vote-time 72h -seed votes.yaml

Print the operator key for the configured salt:

	go run . admin-key

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for the admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (required for postgres)
  - VOTE_TIME (-vote-time): voting duration (default: 72h)
  - SEED_FILE (-seed): YAML votes to load at startup

Settings may also come from a .env file.

# Architecture

  - filter: filter selections and vote derivation
  - votelist: stateful filtered list with a detail view
  - store: SQL persistence for votes and ballots
  - handlers: HTTP request handlers (votes, views)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response and domain types
  - auth: Admin keys, voter addresses, IP hashing
  - db: Driver selection and schema creation
  - seed: YAML vote fixtures
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
