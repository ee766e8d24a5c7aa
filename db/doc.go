// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open selects the driver from the configured database type:

	conn, err := db.Open("sqlite", "file:dotvote.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite (modernc.org/sqlite) is the default. PostgreSQL uses lib/pq.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The schema is portable across both drivers.

# Tables

  - vote: on-chain vote record (start_date in unix seconds)
  - vote_option: options per vote, with their base stake
  - ballot: one ballot per voter per vote
  - ballot_stake: stake per option for a ballot

# Relationships

	vote 1──* vote_option
	vote 1──* ballot
	ballot 1──* ballot_stake

All foreign keys use ON DELETE CASCADE.
*/
package db
