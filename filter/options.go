// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"math"

	"github.com/danielhkuo/dotvote/auth"
	"github.com/danielhkuo/dotvote/models"
)

// OptionViews returns the display form of options. Percentage is each
// option's rounded share of the summed values; all zero when nothing is staked.
func OptionViews(options []models.VoteOption) []models.OptionView {
	var total float64
	for _, o := range options {
		total += o.Value
	}

	out := make([]models.OptionView, len(options))
	for i, o := range options {
		short, _ := auth.ShortenAddress(o.Label)
		out[i] = models.OptionView{
			Label:      o.Label,
			ShortLabel: short,
			Value:      o.Value,
			Percentage: percent(o.Value, total),
		}
	}
	return out
}

// WithUserStakes returns a copy of view annotated with one voter's stakes.
// stakes is indexed like the vote's options; a nil slice leaves view as is.
func WithUserStakes(view models.VoteView, stakes []float64) models.VoteView {
	if stakes == nil {
		return view
	}

	var total float64
	for _, s := range stakes {
		total += s
	}

	options := make([]models.OptionView, len(view.Options))
	copy(options, view.Options)
	for i := range options {
		var stake float64
		if i < len(stakes) {
			stake = stakes[i]
		}
		p := percent(stake, total)
		options[i].UserStake = stake
		options[i].UserPercent = &p
	}
	view.Options = options
	return view
}

func percent(part, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}
