// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dotvote/models"
)

var (
	ErrVoteNotFound  = errors.New("vote not found")
	ErrVoteClosed    = errors.New("vote is closed")
	ErrInvalidStakes = errors.New("invalid stakes")
	ErrInvalidVote   = errors.New("invalid vote")
)

// Store persists votes and ballots
type Store struct {
	db       *sql.DB
	voteTime time.Duration
	now      func() time.Time
}

func New(db *sql.DB, voteTime time.Duration) *Store {
	return &Store{db: db, voteTime: voteTime, now: time.Now}
}

// WithClock returns a copy of s that uses now instead of time.Now
func (s *Store) WithClock(now func() time.Time) *Store {
	c := *s
	c.now = now
	return &c
}

func (s *Store) VoteTime() time.Duration {
	return s.voteTime
}

// UpsertVote inserts the vote or replaces an existing one with the same id
func (s *Store) UpsertVote(ctx context.Context, v models.Vote) error {
	if err := validateVote(v); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, type, metadata, creator, start_date, executed,
		                  min_accept_quorum, voting_power, total_voters)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			metadata = excluded.metadata,
			creator = excluded.creator,
			start_date = excluded.start_date,
			executed = excluded.executed,
			min_accept_quorum = excluded.min_accept_quorum,
			voting_power = excluded.voting_power,
			total_voters = excluded.total_voters
	`, v.ID, v.Data.Type, v.Data.Metadata, v.Data.Creator, v.Data.StartDate.Unix(),
		v.Data.Executed, v.Data.MinAcceptQuorum, v.Data.VotingPower, v.Data.TotalVoters)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	// Replace options
	if _, err := tx.ExecContext(ctx, `DELETE FROM vote_option WHERE vote_id = $1`, v.ID); err != nil {
		return fmt.Errorf("failed to delete options: %w", err)
	}
	for i, opt := range v.Data.Options {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vote_option (vote_id, idx, label, value)
			VALUES ($1, $2, $3, $4)
		`, v.ID, i, opt.Label, opt.Value)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	// Stakes on options that no longer exist stop counting
	_, err = tx.ExecContext(ctx, `
		DELETE FROM ballot_stake
		WHERE option_idx >= $1
		  AND ballot_id IN (SELECT id FROM ballot WHERE vote_id = $2)
	`, len(v.Data.Options), v.ID)
	if err != nil {
		return fmt.Errorf("failed to delete stale stakes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Votes returns all votes ordered by id. Option values and TotalVoters
// include the stakes of stored ballots.
func (s *Store) Votes(ctx context.Context) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, metadata, creator, start_date, executed,
		       min_accept_quorum, voting_power, total_voters
		FROM vote
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	index := make(map[int64]int)
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		index[v.ID] = len(votes)
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	rows.Close()

	if err := s.loadOptions(ctx, votes, index, nil); err != nil {
		return nil, err
	}
	return votes, nil
}

// Vote returns a single vote or ErrVoteNotFound
func (s *Store) Vote(ctx context.Context, id int64) (models.Vote, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, metadata, creator, start_date, executed,
		       min_accept_quorum, voting_power, total_voters
		FROM vote
		WHERE id = $1
	`, id)
	v, err := scanVote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrVoteNotFound
	}
	if err != nil {
		return models.Vote{}, err
	}

	votes := []models.Vote{v}
	if err := s.loadOptions(ctx, votes, map[int64]int{id: 0}, &id); err != nil {
		return models.Vote{}, err
	}
	return votes[0], nil
}

// Execute marks a vote as executed
func (s *Store) Execute(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE vote SET executed = $1 WHERE id = $2`, true, id)
	if err != nil {
		return fmt.Errorf("failed to execute vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to execute vote: %w", err)
	}
	if n == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// CastVote stores b, replacing any earlier ballot by the same voter on the
// same vote. b.ID and b.SubmittedAt are filled in.
func (s *Store) CastVote(ctx context.Context, b *models.Ballot) (bool, error) {
	if b.Voter == "" {
		return false, fmt.Errorf("%w: voter is required", ErrInvalidStakes)
	}

	v, err := s.Vote(ctx, b.VoteID)
	if err != nil {
		return false, err
	}

	now := s.now()
	if v.Data.Executed || !now.Before(v.Data.StartDate.Add(s.voteTime)) {
		return false, ErrVoteClosed
	}
	if err := validateStakes(b.Stakes, len(v.Data.Options)); err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM ballot WHERE vote_id = $1 AND voter = $2
	`, b.VoteID, b.Voter).Scan(&existingID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to query ballot: %w", err)
	}

	isUpdate := err == nil
	if isUpdate {
		b.ID = existingID
		_, err = tx.ExecContext(ctx, `
			UPDATE ballot SET submitted_at = $1, ip_hash = $2 WHERE id = $3
		`, now.Unix(), nullable(b.IPHash), b.ID)
		if err != nil {
			return false, fmt.Errorf("failed to update ballot: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM ballot_stake WHERE ballot_id = $1`, b.ID); err != nil {
			return false, fmt.Errorf("failed to delete old stakes: %w", err)
		}
	} else {
		b.ID = uuid.NewString()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ballot (id, vote_id, voter, submitted_at, ip_hash)
			VALUES ($1, $2, $3, $4, $5)
		`, b.ID, b.VoteID, b.Voter, now.Unix(), nullable(b.IPHash))
		if err != nil {
			return false, fmt.Errorf("failed to insert ballot: %w", err)
		}
	}

	for i, stake := range b.Stakes {
		if stake == 0 {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ballot_stake (ballot_id, option_idx, stake)
			VALUES ($1, $2, $3)
		`, b.ID, i, stake)
		if err != nil {
			return false, fmt.Errorf("failed to insert stake: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	b.SubmittedAt = time.Unix(now.Unix(), 0).UTC()
	return isUpdate, nil
}

// BallotStakes returns the stakes voter placed on a vote, indexed by option.
// It returns nil without error when the voter has no ballot.
func (s *Store) BallotStakes(ctx context.Context, voteID int64, voter string) ([]float64, error) {
	var ballotID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM ballot WHERE vote_id = $1 AND voter = $2
	`, voteID, voter).Scan(&ballotID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ballot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT option_idx, stake FROM ballot_stake WHERE ballot_id = $1 ORDER BY option_idx
	`, ballotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stakes: %w", err)
	}
	defer rows.Close()

	stakes := []float64{}
	for rows.Next() {
		var idx int
		var stake float64
		if err := rows.Scan(&idx, &stake); err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		for len(stakes) <= idx {
			stakes = append(stakes, 0)
		}
		stakes[idx] = stake
	}
	return stakes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVote(row scanner) (models.Vote, error) {
	var v models.Vote
	var start int64
	err := row.Scan(&v.ID, &v.Data.Type, &v.Data.Metadata, &v.Data.Creator, &start,
		&v.Data.Executed, &v.Data.MinAcceptQuorum, &v.Data.VotingPower, &v.Data.TotalVoters)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, err
		}
		return v, fmt.Errorf("failed to scan vote: %w", err)
	}
	v.Data.StartDate = time.Unix(start, 0).UTC()
	v.Data.Options = []models.VoteOption{}
	return v, nil
}

// loadOptions fills options for votes and adds ballot stakes on top of the
// stored option values. only restricts the queries to one vote.
func (s *Store) loadOptions(ctx context.Context, votes []models.Vote, index map[int64]int, only *int64) error {
	query := `SELECT vote_id, idx, label, value FROM vote_option`
	var args []any
	if only != nil {
		query += ` WHERE vote_id = $1`
		args = append(args, *only)
	}
	query += ` ORDER BY vote_id, idx`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var voteID int64
		var idx int
		var opt models.VoteOption
		if err := rows.Scan(&voteID, &idx, &opt.Label, &opt.Value); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		if i, ok := index[voteID]; ok {
			votes[i].Data.Options = append(votes[i].Data.Options, opt)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}
	rows.Close()

	query = `
		SELECT b.vote_id, s.option_idx, SUM(s.stake)
		FROM ballot_stake s
		JOIN ballot b ON b.id = s.ballot_id`
	if only != nil {
		query += ` WHERE b.vote_id = $1`
	}
	query += ` GROUP BY b.vote_id, s.option_idx`

	rows, err = s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query stakes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var voteID int64
		var idx int
		var total float64
		if err := rows.Scan(&voteID, &idx, &total); err != nil {
			return fmt.Errorf("failed to scan stakes: %w", err)
		}
		i, ok := index[voteID]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(votes[i].Data.Options) {
			continue
		}
		votes[i].Data.Options[idx].Value += total
		votes[i].Data.TotalVoters += total
	}
	return rows.Err()
}

func validateVote(v models.Vote) error {
	switch v.Data.Type {
	case models.TypeAllocation, models.TypeCuration, models.TypeInformational:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidVote, v.Data.Type)
	}
	if v.Data.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrInvalidVote)
	}
	if v.Data.VotingPower < 0 {
		return fmt.Errorf("%w: voting_power must not be negative", ErrInvalidVote)
	}
	if v.Data.MinAcceptQuorum < 0 || v.Data.MinAcceptQuorum > 1 {
		return fmt.Errorf("%w: min_accept_quorum must be between 0 and 1", ErrInvalidVote)
	}
	if len(v.Data.Options) == 0 {
		return fmt.Errorf("%w: at least one option is required", ErrInvalidVote)
	}
	return nil
}

func validateStakes(stakes []float64, options int) error {
	if len(stakes) != options {
		return fmt.Errorf("%w: expected %d stakes, got %d", ErrInvalidStakes, options, len(stakes))
	}
	var total float64
	for i, s := range stakes {
		if s < 0 {
			return fmt.Errorf("%w: stake for option %d is negative", ErrInvalidStakes, i)
		}
		total += s
	}
	if total <= 0 {
		return fmt.Errorf("%w: at least one stake must be positive", ErrInvalidStakes)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
