// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/dotvote/models"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Status filters votes on whether they are still accepting ballots
type Status int

const (
	StatusAll Status = iota
	StatusOpen
	StatusClosed
)

var statusNames = []string{"all", "open", "closed"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Outcome filters closed votes by their result
type Outcome int

const (
	OutcomeAll Outcome = iota
	OutcomePassed
	OutcomeRejected
	OutcomeEnacted
	OutcomePending
)

var outcomeNames = []string{"all", "passed", "rejected", "enacted", "pending"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// AppType filters votes by the kind of app that created them
type AppType int

const (
	AppAll AppType = iota
	AppAllocations
	AppCurations
	AppInformational
)

var appNames = []string{"all", "allocations", "curations", "informational"}

func (a AppType) String() string {
	if a < 0 || int(a) >= len(appNames) {
		return fmt.Sprintf("AppType(%d)", int(a))
	}
	return appNames[a]
}

// VoteType returns the vote data type matched by a. AppAll has none.
func (a AppType) VoteType() string {
	switch a {
	case AppAllocations:
		return models.TypeAllocation
	case AppCurations:
		return models.TypeCuration
	case AppInformational:
		return models.TypeInformational
	}
	return ""
}

// Selection holds the three independent filters. The zero value matches everything.
type Selection struct {
	Status  Status
	Outcome Outcome
	App     AppType
}

// Active reports whether any filter is set
func (s Selection) Active() bool {
	return s != Selection{}
}

// StatusFromCode maps a dropdown index to a Status. Index 0 is "All".
func StatusFromCode(code int) (Status, error) {
	if code < 0 || code >= len(statusNames) {
		return StatusAll, fmt.Errorf("%w: status code %d", ErrUnknownFilter, code)
	}
	return Status(code), nil
}

// OutcomeFromCode maps a dropdown index to an Outcome. Index 0 is "All".
func OutcomeFromCode(code int) (Outcome, error) {
	if code < 0 || code >= len(outcomeNames) {
		return OutcomeAll, fmt.Errorf("%w: outcome code %d", ErrUnknownFilter, code)
	}
	return Outcome(code), nil
}

// AppTypeFromCode maps a dropdown index to an AppType. Index 0 is "All".
func AppTypeFromCode(code int) (AppType, error) {
	if code < 0 || code >= len(appNames) {
		return AppAll, fmt.Errorf("%w: app type code %d", ErrUnknownFilter, code)
	}
	return AppType(code), nil
}

// ParseStatus accepts "open", "closed", "all" or an empty string
func ParseStatus(name string) (Status, error) {
	i, ok := lookup(statusNames, name)
	if !ok {
		return StatusAll, fmt.Errorf("%w: status %q", ErrUnknownFilter, name)
	}
	return Status(i), nil
}

// ParseOutcome accepts "passed", "rejected", "enacted", "pending", "all" or an empty string
func ParseOutcome(name string) (Outcome, error) {
	i, ok := lookup(outcomeNames, name)
	if !ok {
		return OutcomeAll, fmt.Errorf("%w: outcome %q", ErrUnknownFilter, name)
	}
	return Outcome(i), nil
}

// ParseAppType accepts singular or plural type names ("curation" or "curations")
func ParseAppType(name string) (AppType, error) {
	name = strings.TrimSpace(name)
	i, ok := lookup(appNames, name)
	if !ok {
		i, ok = lookup(appNames, name+"s")
	}
	if !ok {
		return AppAll, fmt.Errorf("%w: app type %q", ErrUnknownFilter, name)
	}
	return AppType(i), nil
}

func lookup(names []string, name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, true
	}
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
