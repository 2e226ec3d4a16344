package commands

import (
	"errors"
	"time"

	"relist/internal/pkg/errs"
	"relist/internal/pkg/guard"
)

var (
	ErrCancelStalePickupsCommandIsNotConstructed = errors.New(
		"CancelStalePickupsCommand must be created via NewCancelStalePickupsCommand constructor",
	)
)

// CancelStalePickupsCommand represents the scheduled cleanup of pickup
// requests that stayed pending past their time-to-live without any agent
// accepting them.
type CancelStalePickupsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewCancelStalePickupsCommand creates a command to cancel all requests still
// pending that were created before cutoff.
func NewCancelStalePickupsCommand(cutoff time.Time) (CancelStalePickupsCommand, error) {
	if cutoff.IsZero() {
		return CancelStalePickupsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return CancelStalePickupsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStalePickupsCommandIsNotConstructed if validation fails.
func (c CancelStalePickupsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStalePickupsCommandIsNotConstructed)
}

// Cutoff returns the creation-time threshold below which pending requests
// are cancelled.
func (c CancelStalePickupsCommand) Cutoff() time.Time {
	return c.cutoff
}
