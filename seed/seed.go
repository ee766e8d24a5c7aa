// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed loads vote fixtures from YAML.
//
// A seed file lists votes under a top-level "votes" key:
//
//	votes:
//	  - id: 1
//	    data:
//	      start_date: 2025-01-10T12:00:00Z
//	      type: curation
//	      min_accept_quorum: 0.1
//	      voting_power: 1000
//	      options:
//	        - label: Project A
//	        - label: Project B
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/dotvote/models"
)

type File struct {
	Votes []models.Vote `yaml:"votes"`
}

// Upserter stores a vote
type Upserter interface {
	UpsertVote(ctx context.Context, v models.Vote) error
}

// LoadFile reads votes from a YAML seed file
func LoadFile(path string) ([]models.Vote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]models.Vote, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	seen := make(map[int64]bool, len(f.Votes))
	for _, v := range f.Votes {
		if seen[v.ID] {
			return nil, fmt.Errorf("duplicate vote id %d in seed file", v.ID)
		}
		seen[v.ID] = true
	}
	return f.Votes, nil
}

// Apply upserts every vote in order and stops at the first failure
func Apply(ctx context.Context, u Upserter, votes []models.Vote) error {
	for _, v := range votes {
		if err := u.UpsertVote(ctx, v); err != nil {
			return fmt.Errorf("failed to seed vote %d: %w", v.ID, err)
		}
	}
	return nil
}
