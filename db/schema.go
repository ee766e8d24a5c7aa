// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the database selected by dbType and verifies the connection
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch strings.ToLower(dbType) {
	case TypeSQLite, "":
		driver = "sqlite"
	case TypePostgres, "postgresql":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	// Some drivers reject multiple statements per Exec
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Timestamps are unix seconds, matching on-chain values
const schema = `
-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id BIGINT PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN ('allocation', 'curation', 'informational')),
    metadata TEXT NOT NULL DEFAULT '',
    creator TEXT NOT NULL DEFAULT '',
    start_date BIGINT NOT NULL,
    executed BOOLEAN NOT NULL DEFAULT FALSE,
    min_accept_quorum DOUBLE PRECISION NOT NULL DEFAULT 0,
    voting_power DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_voters DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_vote_type ON vote(type);
CREATE INDEX IF NOT EXISTS idx_vote_start_date ON vote(start_date);

-- Options
CREATE TABLE IF NOT EXISTS vote_option (
    vote_id BIGINT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    idx INTEGER NOT NULL,
    label TEXT NOT NULL,
    value DOUBLE PRECISION NOT NULL DEFAULT 0,
    PRIMARY KEY (vote_id, idx)
);

-- Ballots
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    vote_id BIGINT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    voter TEXT NOT NULL,
    submitted_at BIGINT NOT NULL,
    ip_hash TEXT,
    UNIQUE (vote_id, voter)
);

CREATE INDEX IF NOT EXISTS idx_ballot_vote_id ON ballot(vote_id);

-- Stakes
CREATE TABLE IF NOT EXISTS ballot_stake (
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    option_idx INTEGER NOT NULL,
    stake DOUBLE PRECISION NOT NULL CHECK (stake >= 0),
    PRIMARY KEY (ballot_id, option_idx)
);
`
