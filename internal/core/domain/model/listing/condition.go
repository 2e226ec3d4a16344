package listing

import (
	"fmt"

	"relist/internal/pkg/errs"
)

// Condition describes the physical state of an item as declared by the seller
// at submission time.
type Condition int

const (
	// ConditionUnknown represents an invalid or undefined condition.
	ConditionUnknown Condition = iota

	// ConditionNew indicates an unused item.
	ConditionNew

	// ConditionGentlyUsed indicates light wear.
	ConditionGentlyUsed

	// ConditionWorn indicates visible wear.
	ConditionWorn
)

func getConditionStrings() map[Condition]string {
	return map[Condition]string{
		ConditionUnknown:    "unknown",
		ConditionNew:        "new",
		ConditionGentlyUsed: "gently_used",
		ConditionWorn:       "worn",
	}
}

func getValidConditionStrings() map[Condition]string {
	//nolint:exhaustive // ConditionUnknown is intentionally excluded as it's invalid
	return map[Condition]string{
		ConditionNew:        "new",
		ConditionGentlyUsed: "gently_used",
		ConditionWorn:       "worn",
	}
}

// ConditionFromString parses a condition from its wire representation.
func ConditionFromString(s string) (Condition, error) {
	for condition, str := range getValidConditionStrings() {
		if str == s {
			return condition, nil
		}
	}
	return ConditionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"condition",
		fmt.Errorf("%q is not a valid condition", s),
	)
}

// Validate checks if the Condition value is valid.
func (c Condition) Validate() error {
	if _, ok := getValidConditionStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"condition",
			fmt.Errorf("%d is not a valid condition", c),
		)
	}
	return nil
}

// String returns the wire name of the condition.
func (c Condition) String() string {
	if str, ok := getConditionStrings()[c]; ok {
		return str
	}
	return "unknown"
}
