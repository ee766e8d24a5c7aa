// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/dotvote/auth"
	"github.com/danielhkuo/dotvote/cliparse"
	"github.com/danielhkuo/dotvote/db"
	"github.com/danielhkuo/dotvote/models"
)

// VoteTime is the voting duration used by GetTestConfig
const VoteTime = time.Hour

// SetupTestDB creates a fresh SQLite database with the full schema.
// The database file lives in a per-test temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		VoteTime:     VoteTime,
	}
}

// AdminHeaders returns the headers for an admin request under cfg
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Key": auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt)}
}

// NewVote builds a vote with two options that started at start
func NewVote(id int64, voteType string, start time.Time) models.Vote {
	return models.Vote{
		ID: id,
		Data: models.VoteData{
			StartDate:       start.Truncate(time.Second).UTC(),
			Type:            voteType,
			Metadata:        "Test vote",
			Creator:         "0xcreator",
			MinAcceptQuorum: 0.1,
			VotingPower:     1000,
			Options: []models.VoteOption{
				{Label: "Option A"},
				{Label: "Option B"},
			},
		},
	}
}

// InsertTestVote writes a vote row and its options directly
func InsertTestVote(t *testing.T, conn *sql.DB, v models.Vote) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, type, metadata, creator, start_date, executed,
		                  min_accept_quorum, voting_power, total_voters)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID, v.Data.Type, v.Data.Metadata, v.Data.Creator, v.Data.StartDate.Unix(),
		v.Data.Executed, v.Data.MinAcceptQuorum, v.Data.VotingPower, v.Data.TotalVoters)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	for i, opt := range v.Data.Options {
		_, err := conn.Exec(`
			INSERT INTO vote_option (vote_id, idx, label, value)
			VALUES ($1, $2, $3, $4)
		`, v.ID, i, opt.Label, opt.Value)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
