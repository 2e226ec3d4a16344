package pickup

import (
	"fmt"

	"relist/internal/pkg/errs"
)

// Status represents the lifecycle state of a pickup request.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp
//	   │            │
//	   └────────────┴──> Cancelled
//
// PickedUp and Cancelled are terminal: a request becomes immutable once the
// item has been collected or the request withdrawn. Cancellation is not
// reachable from PickedUp.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when a pickup request is created.
	StatusPending

	// StatusAccepted indicates the delivery agent has taken the assignment.
	StatusAccepted

	// StatusPickedUp indicates the item has been physically collected.
	// This transition must coincide with the linked listing moving to
	// picked_up. Terminal.
	StatusPickedUp

	// StatusCancelled indicates the request was withdrawn before collection.
	// Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAccepted:  "accepted",
		StatusPickedUp:  "picked_up",
		StatusCancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusAccepted:  "accepted",
		StatusPickedUp:  "picked_up",
		StatusCancelled: "cancelled",
	}
}

// getTransitions returns the adjacency table of legal status edges.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusCancelled},
		StatusAccepted:  {StatusPickedUp, StatusCancelled},
		StatusPickedUp:  {},
		StatusCancelled: {},
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid pickup request status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid pickup request status", s),
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
	return s == StatusPickedUp || s == StatusCancelled
}

// IsActive reports whether a request in this status still blocks the creation
// of another pickup request for the same listing.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
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
