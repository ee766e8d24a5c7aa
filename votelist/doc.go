// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votelist holds the state of one filtered vote list.

A VoteList owns three filter selections, the last vote snapshot loaded from a
Provider, the filtered result, and an optional selected vote:

	list := votelist.New(store, store)
	if err := list.Refresh(ctx); err != nil {
		return err
	}
	list.SelectStatus(2) // closed
	views := list.Visible()

The filtered result is rebuilt synchronously after every selection change and
every Refresh. Filters start at "All" and live as long as the VoteList.

# Detail View

OpenVote only accepts ids present in the current snapshot. CastVote submits a
ballot for the selected vote through the Caster and closes the detail view
once the ballot is stored.
*/
package votelist
