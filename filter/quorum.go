// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import "github.com/danielhkuo/dotvote/models"

// DefaultEvaluator computes quorum against the voting power snapshot
type DefaultEvaluator struct{}

// QuorumProgress returns participating stake over the stake required for quorum.
// A zero quorum requirement is always met.
func (DefaultEvaluator) QuorumProgress(data models.VoteData) float64 {
	required := data.MinAcceptQuorum * data.VotingPower
	if required <= 0 {
		return 1
	}
	if data.TotalVoters <= 0 {
		return 0
	}
	return data.TotalVoters / required
}

func (e DefaultEvaluator) VoteStatus(v models.Vote, open bool) models.VoteStatus {
	switch {
	case v.Data.Executed:
		return models.StatusExecuted
	case open:
		return models.StatusOpen
	case e.QuorumProgress(v.Data) >= 1:
		return models.StatusSuccessful
	default:
		return models.StatusFailed
	}
}
