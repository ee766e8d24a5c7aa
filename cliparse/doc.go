// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:dotvote.db)
  - AdminKeySalt: Secret for the operator key HMAC (required)
  - VoteTime: how long votes stay open after their start date (default: 72h)
  - SeedFile: YAML file of votes loaded at startup (optional)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-vote-time   Voting duration
	-seed        Seed file
	-admin-salt  Admin key salt
	-env         Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	VOTE_TIME      → -vote-time
	SEED_FILE      → -seed
	ADMIN_KEY_SALT → -admin-salt

The dotenv file is loaded first (a missing file is ignored) and never
overrides variables already set in the environment. CLI flags take
precedence over both.

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY_SALT is missing
  - DATABASE_URL is missing for postgres
  - VOTE_TIME is not a positive duration
*/
package cliparse
