package kernel

import (
	"fmt"

	"relist/internal/pkg/errs"
)

// Role identifies the kind of actor attempting an operation on a listing or
// pickup request. Transition permissions are defined per role by the
// lifecycle service; the role itself is only an identity, not a capability.
//
// The zero value (RoleUnknown) is invalid and rejected by Validate.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleSeller submits items into the pipeline. Sellers create listings and
	// pickup requests but never drive transitions after creation, except
	// cancelling their own pending request.
	RoleSeller

	// RoleDeliveryAgent physically collects items. Agents drive pickup
	// requests through accepted and picked_up.
	RoleDeliveryAgent

	// RoleManager reviews collected items at the warehouse. Managers drive
	// listings through under_review and into a terminal state.
	RoleManager

	// RoleSystem is used by background jobs, currently only to cancel
	// stale pending pickup requests.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:       "unknown",
		RoleSeller:        "seller",
		RoleDeliveryAgent: "delivery_agent",
		RoleManager:       "manager",
		RoleSystem:        "system",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleSeller:        "seller",
		RoleDeliveryAgent: "delivery_agent",
		RoleManager:       "manager",
		RoleSystem:        "system",
	}
}

// RoleFromString parses a role from its wire representation.
// Accepts "seller", "delivery_agent", "manager", and "system".
// Returns an error for any other input, including the empty string.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is valid.
// Valid roles are: RoleSeller, RoleDeliveryAgent, RoleManager, RoleSystem.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the wire name of the role.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
