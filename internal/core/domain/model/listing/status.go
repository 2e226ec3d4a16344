package listing

import (
	"fmt"

	"relist/internal/pkg/errs"
)

// Status represents the lifecycle state of a listing as it moves through the
// pickup-and-redesign pipeline. It implements a state machine with an explicit
// adjacency table so that illegal states are unrepresentable rather than
// merely unchecked.
//
// State transitions:
//
//	Requested ──> Assigned ──> PickedUp ──> UnderReview ──┬──> Listed
//	                                           ^          ├──> Rejected
//	                                           │          │
//	                                           └──────────┴──> Redesigned
//	                                        (loop back at most once)
//
// Listed and Rejected are terminal: listings are never deleted, terminal
// states are retained for audit.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the initial status when a seller submits an item.
	StatusRequested

	// StatusAssigned indicates a pickup request has been created for the
	// listing and a delivery agent is assigned to collect it.
	StatusAssigned

	// StatusPickedUp indicates the delivery agent has physically collected
	// the item. The inspection checklist becomes settable from here on.
	StatusPickedUp

	// StatusUnderReview indicates warehouse staff are inspecting the item.
	// Reaching it requires a populated inspection checklist.
	StatusUnderReview

	// StatusRedesigned indicates the item was reworked and may re-enter
	// review once before reaching a terminal state.
	StatusRedesigned

	// StatusListed indicates the item is published on the marketplace.
	// Reaching it requires a final price. Terminal.
	StatusListed

	// StatusRejected indicates the item was refused during review. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusRequested:   "requested",
		StatusAssigned:    "assigned",
		StatusPickedUp:    "picked_up",
		StatusUnderReview: "under_review",
		StatusRedesigned:  "redesigned",
		StatusListed:      "listed",
		StatusRejected:    "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRequested:   "requested",
		StatusAssigned:    "assigned",
		StatusPickedUp:    "picked_up",
		StatusUnderReview: "under_review",
		StatusRedesigned:  "redesigned",
		StatusListed:      "listed",
		StatusRejected:    "rejected",
	}
}

// getTransitions returns the adjacency table of legal status edges.
// Any (current, target) pair not present here is an illegal transition.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusRequested:   {StatusAssigned},
		StatusAssigned:    {StatusPickedUp},
		StatusPickedUp:    {StatusUnderReview},
		StatusUnderReview: {StatusRedesigned, StatusListed, StatusRejected},
		StatusRedesigned:  {StatusUnderReview},
		StatusListed:      {},
		StatusRejected:    {},
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for any string that is not a valid listing status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid listing status", s),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid listing status", s),
		)
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusListed || s == StatusRejected
}

// CanTransitionTo reports whether target is a direct successor of s
// in the transition graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}
