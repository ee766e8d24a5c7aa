package models

import "time"

// Vote type constants
const (
	TypeAllocation    = "allocation"
	TypeCuration      = "curation"
	TypeInformational = "informational"
)

// VoteStatus is the derived state of a vote
type VoteStatus string

const (
	StatusOpen       VoteStatus = "open"
	StatusSuccessful VoteStatus = "successful"
	StatusFailed     VoteStatus = "failed"
	StatusExecuted   VoteStatus = "executed"
)

// Domain types

type VoteOption struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// VoteData is the on-chain payload of a dot-vote
type VoteData struct {
	StartDate       time.Time    `json:"start_date" yaml:"start_date"`
	Type            string       `json:"type" yaml:"type"`
	Metadata        string       `json:"metadata" yaml:"metadata"`
	Creator         string       `json:"creator" yaml:"creator"`
	Executed        bool         `json:"executed" yaml:"executed"`
	MinAcceptQuorum float64      `json:"min_accept_quorum" yaml:"min_accept_quorum"` // fraction of voting power
	VotingPower     float64      `json:"voting_power" yaml:"voting_power"`
	TotalVoters     float64      `json:"total_voters" yaml:"total_voters"` // participating stake
	Options         []VoteOption `json:"options" yaml:"options"`
}

type Vote struct {
	ID   int64    `json:"id" yaml:"id"`
	Data VoteData `json:"data" yaml:"data"`
}

// Clone returns a copy that shares no slices with v
func (v Vote) Clone() Vote {
	c := v
	if v.Data.Options != nil {
		c.Data.Options = make([]VoteOption, len(v.Data.Options))
		copy(c.Data.Options, v.Data.Options)
	}
	return c
}

// OptionView is the display form of one option of a vote.
// UserPercent is set only when the request names a voter with a ballot on the vote.
type OptionView struct {
	Label       string  `json:"label"`
	ShortLabel  string  `json:"short_label"`
	Value       float64 `json:"value"`
	Percentage  int     `json:"percentage"`
	UserStake   float64 `json:"user_stake,omitempty"`
	UserPercent *int    `json:"user_percent,omitempty"`
}

// VoteView carries the fields derived from a vote at a point in time.
// The wrapped Vote is a copy; the stored record is never modified.
type VoteView struct {
	Vote           Vote         `json:"vote"`
	EndDate        time.Time    `json:"end_date"`
	Open           bool         `json:"open"`
	QuorumProgress float64      `json:"quorum_progress"`
	Status         VoteStatus   `json:"status"`
	EndsIn         string       `json:"ends_in"`
	Options        []OptionView `json:"options"`
}

type Ballot struct {
	ID          string    `json:"id"`
	VoteID      int64     `json:"vote_id"`
	Voter       string    `json:"voter"`
	Stakes      []float64 `json:"stakes"` // one entry per vote option
	SubmittedAt time.Time `json:"submitted_at"`
	IPHash      string    `json:"-"` // Never expose in JSON
}

// Request types

type UpsertVoteRequest = Vote

type SubmitBallotRequest struct {
	Stakes []float64 `json:"stakes"`
}

type SetFiltersRequest struct {
	Status  int `json:"status"`
	Outcome int `json:"outcome"`
	AppType int `json:"app_type"`
}

type SelectVoteRequest struct {
	VoteID int64 `json:"vote_id"`
}

// Response types

// VoteListResponse lists the votes passing the filters. AllTotal counts the
// votes before filtering, so an empty list with AllTotal > 0 means no matches.
type VoteListResponse struct {
	Votes    []VoteView `json:"votes"`
	Total    int        `json:"total"`
	AllTotal int        `json:"all_total"`
}

type SubmitBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type CreateViewResponse struct {
	ViewID string `json:"view_id"`
}

type FilterState struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
	AppType string `json:"app_type"`
}

type ViewResponse struct {
	ViewID   string      `json:"view_id"`
	Filters  FilterState `json:"filters"`
	Votes    []VoteView  `json:"votes"`
	Total    int         `json:"total"`
	AllTotal int         `json:"all_total"`
	Selected *VoteView   `json:"selected,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
