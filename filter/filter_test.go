package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/dotvote/models"
)

const voteTime = 100 * time.Second

var epoch = time.Unix(0, 0).UTC()

func at(sec int) time.Time {
	return epoch.Add(time.Duration(sec) * time.Second)
}

// makeVote builds a vote starting at start (seconds) with the given quorum
// participation. A participation of 1 or more reaches quorum.
func makeVote(id int64, start int, voteType string, participation float64, executed bool) models.Vote {
	return models.Vote{
		ID: id,
		Data: models.VoteData{
			StartDate:       at(start),
			Type:            voteType,
			Executed:        executed,
			MinAcceptQuorum: 0.5,
			VotingPower:     200,
			TotalVoters:     participation * 100,
			Options: []models.VoteOption{
				{Label: "a", Value: participation * 60},
				{Label: "b", Value: participation * 40},
			},
		},
	}
}

// fixture at now=150: ids 1,2 open; 3 successful; 4 failed; 5 executed
func fixture() []models.Vote {
	return []models.Vote{
		makeVote(1, 100, models.TypeAllocation, 0.2, false),
		makeVote(2, 120, models.TypeCuration, 2, false),
		makeVote(3, 0, models.TypeCuration, 1.5, false),
		makeVote(4, 10, models.TypeInformational, 0.3, false),
		makeVote(5, 20, models.TypeAllocation, 1, true),
	}
}

func ids(views []models.VoteView) []int64 {
	out := make([]int64, 0, len(views))
	for _, v := range views {
		out = append(out, v.Vote.ID)
	}
	return out
}

func TestRecompute_NoFiltersIsIdentity(t *testing.T) {
	votes := fixture()
	got := Recompute(votes, voteTime, Selection{}, at(150), nil)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))
}

func TestRecompute_EmptyInput(t *testing.T) {
	got := Recompute(nil, voteTime, Selection{Status: StatusOpen}, at(0), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecompute_StatusFilter(t *testing.T) {
	votes := fixture()
	now := at(150)

	open := Recompute(votes, voteTime, Selection{Status: StatusOpen}, now, nil)
	closed := Recompute(votes, voteTime, Selection{Status: StatusClosed}, now, nil)

	assert.Equal(t, []int64{1, 2}, ids(open))
	assert.Equal(t, []int64{3, 4, 5}, ids(closed))

	for _, v := range open {
		assert.True(t, now.Before(v.EndDate))
	}
	for _, v := range closed {
		assert.False(t, now.Before(v.EndDate))
	}
}

func TestRecompute_ClosesExactlyAtEndDate(t *testing.T) {
	votes := []models.Vote{makeVote(1, 0, models.TypeCuration, 1, false)}

	got := Recompute(votes, voteTime, Selection{Status: StatusOpen}, at(100), nil)
	assert.Empty(t, got)

	got = Recompute(votes, voteTime, Selection{Status: StatusClosed}, at(100), nil)
	assert.Len(t, got, 1)
}

func TestRecompute_OpenVoteExcludedByClosedFilter(t *testing.T) {
	a := makeVote(1, 0, models.TypeCuration, 1, false)

	got := Recompute([]models.Vote{a}, voteTime, Selection{Status: StatusClosed}, at(50), nil)
	assert.Empty(t, got)

	got = Recompute([]models.Vote{a}, voteTime, Selection{}, at(50), nil)
	require.Len(t, got, 1)
	assert.True(t, got[0].Open)
	assert.Equal(t, models.StatusOpen, got[0].Status)
}

func TestRecompute_OutcomeFilter(t *testing.T) {
	votes := fixture()
	now := at(150)

	tests := []struct {
		outcome Outcome
		want    []int64
	}{
		{OutcomePassed, []int64{3, 5}},
		{OutcomeRejected, []int64{4}},
		{OutcomeEnacted, []int64{5}},
		{OutcomePending, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			got := Recompute(votes, voteTime, Selection{Outcome: tt.outcome}, now, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRecompute_OutcomeFilterExcludesOpenVotes(t *testing.T) {
	// Executed while still inside the voting window
	votes := []models.Vote{
		makeVote(1, 100, models.TypeCuration, 3, true),
		makeVote(2, 100, models.TypeCuration, 0, false),
	}

	for _, o := range []Outcome{OutcomePassed, OutcomeRejected, OutcomeEnacted, OutcomePending} {
		got := Recompute(votes, voteTime, Selection{Outcome: o}, at(150), nil)
		assert.Empty(t, got, "outcome %s should exclude open votes", o)
	}
}

func TestRecompute_ExecutedVote(t *testing.T) {
	b := makeVote(7, 0, models.TypeAllocation, 1, true)
	now := at(500)

	got := Recompute([]models.Vote{b}, voteTime, Selection{Outcome: OutcomeEnacted}, now, nil)
	assert.Equal(t, []int64{7}, ids(got))

	got = Recompute([]models.Vote{b}, voteTime, Selection{Outcome: OutcomePending}, now, nil)
	assert.Empty(t, got)
}

func TestRecompute_AppTypeFilter(t *testing.T) {
	votes := fixture()

	app, err := ParseAppType("curations")
	require.NoError(t, err)

	got := Recompute(votes, voteTime, Selection{App: app}, at(150), nil)
	assert.Equal(t, []int64{2, 3}, ids(got))
	for _, v := range got {
		assert.Equal(t, models.TypeCuration, v.Vote.Data.Type)
	}
}

func TestRecompute_FiltersAreANDed(t *testing.T) {
	votes := fixture()
	sel := Selection{Status: StatusClosed, Outcome: OutcomePassed, App: AppAllocations}

	got := Recompute(votes, voteTime, sel, at(150), nil)
	assert.Equal(t, []int64{5}, ids(got))
}

func TestRecompute_Idempotent(t *testing.T) {
	votes := fixture()
	sel := Selection{Status: StatusClosed, Outcome: OutcomePassed}

	first := Recompute(votes, voteTime, sel, at(150), nil)
	second := Recompute(votes, voteTime, sel, at(150), nil)
	assert.Equal(t, first, second)
}

func TestRecompute_SubsetPreservingOrder(t *testing.T) {
	votes := fixture()
	// Reverse so order is not sorted by id
	for i, j := 0, len(votes)-1; i < j; i, j = i+1, j-1 {
		votes[i], votes[j] = votes[j], votes[i]
	}

	selections := []Selection{
		{},
		{Status: StatusOpen},
		{Status: StatusClosed},
		{Outcome: OutcomeRejected},
		{App: AppCurations},
		{Status: StatusClosed, App: AppAllocations},
	}

	for _, sel := range selections {
		got := Recompute(votes, voteTime, sel, at(150), nil)

		pos := 0
		for _, v := range got {
			for pos < len(votes) && votes[pos].ID != v.Vote.ID {
				pos++
			}
			require.Less(t, pos, len(votes), "vote %d out of order or not in input", v.Vote.ID)
			pos++
		}
	}
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	votes := fixture()
	before := make([]models.Vote, len(votes))
	for i, v := range votes {
		before[i] = v.Clone()
	}

	got := Recompute(votes, voteTime, Selection{}, at(150), nil)
	require.NotEmpty(t, got)

	// Mutating the result must not leak into the input
	got[0].Vote.Data.Options[0].Value = -1
	got[0].Vote.Data.Type = "changed"

	assert.Equal(t, before, votes)
}

func TestRecompute_DerivedFields(t *testing.T) {
	v := makeVote(1, 0, models.TypeCuration, 1.5, false)

	got := Recompute([]models.Vote{v}, voteTime, Selection{}, at(40), nil)
	require.Len(t, got, 1)

	assert.Equal(t, at(100), got[0].EndDate)
	assert.True(t, got[0].Open)
	assert.InDelta(t, 1.5, got[0].QuorumProgress, 1e-9)
	assert.Contains(t, got[0].EndsIn, "from now")

	got = Recompute([]models.Vote{v}, voteTime, Selection{}, at(4000), nil)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].EndsIn, "ago")
}

type fixedEvaluator struct {
	status models.VoteStatus
}

func (f fixedEvaluator) QuorumProgress(models.VoteData) float64 { return 0.25 }

func (f fixedEvaluator) VoteStatus(models.Vote, bool) models.VoteStatus { return f.status }

func TestRecompute_CustomEvaluator(t *testing.T) {
	votes := fixture()

	got := Recompute(votes, voteTime, Selection{Outcome: OutcomeRejected}, at(150), fixedEvaluator{models.StatusFailed})
	assert.Equal(t, []int64{3, 4, 5}, ids(got))
	for _, v := range got {
		assert.Equal(t, 0.25, v.QuorumProgress)
	}
}

func TestDerive_OptionViews(t *testing.T) {
	v := makeVote(1, 0, models.TypeCuration, 1, false)
	v.Data.Options = []models.VoteOption{
		{Label: "Project A", Value: 1},
		{Label: "0x1234567890abcdef1234567890abcdef12345678", Value: 2},
	}

	view := Derive(v, voteTime, at(40), nil)
	require.Len(t, view.Options, 2)

	assert.Equal(t, "Project A", view.Options[0].ShortLabel)
	assert.Equal(t, 33, view.Options[0].Percentage)
	assert.Equal(t, "0x1234…5678", view.Options[1].ShortLabel)
	assert.Equal(t, 67, view.Options[1].Percentage)
	assert.Nil(t, view.Options[0].UserPercent)
}

func TestOptionViews_NoStake(t *testing.T) {
	got := OptionViews([]models.VoteOption{{Label: "a"}, {Label: "b"}})
	require.Len(t, got, 2)
	for _, o := range got {
		assert.Zero(t, o.Percentage)
	}
	assert.Empty(t, OptionViews(nil))
}

func TestWithUserStakes(t *testing.T) {
	view := Derive(makeVote(1, 0, models.TypeCuration, 1, false), voteTime, at(40), nil)

	got := WithUserStakes(view, []float64{3, 1})
	require.Len(t, got.Options, 2)
	require.NotNil(t, got.Options[0].UserPercent)
	assert.Equal(t, 75, *got.Options[0].UserPercent)
	assert.Equal(t, 25, *got.Options[1].UserPercent)
	assert.Equal(t, 3.0, got.Options[0].UserStake)

	// The original view is untouched
	assert.Nil(t, view.Options[0].UserPercent)

	assert.Equal(t, view, WithUserStakes(view, nil))
}
