package listing

import (
	"errors"
	"fmt"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/pkg/errs"
)

var (
	// ErrListingIsNotConstructed is returned when a Listing instance was not created
	// through the NewListing or RestoreListing factory methods.
	ErrListingIsNotConstructed = errors.New("Listing must be created via NewListing constructor")
)

// maxRedesignLoops bounds how many times a redesigned item may re-enter review
// before it must reach a terminal state.
const maxRedesignLoops = 1

// Listing is the aggregate root for one physical item moving through the
// marketplace pipeline. It is created when a seller submits an item, mutated
// by the delivery agent (pickup confirmation) and warehouse managers (review,
// checklist, pricing), and never deleted: terminal states are retained for audit.
//
// Listing follows these invariants:
//   - Must have valid listing and seller identifiers
//   - Status only advances along the edges of the transition graph
//   - The inspection checklist is only settable once the item is picked up
//   - A final price is required before the item can be listed
//   - The redesign loop back into review happens at most once
//   - Can only be created through NewListing or RestoreListing
type Listing struct {
	id          kernel.UUID
	sellerID    kernel.UUID
	productType string
	brand       string
	condition   Condition
	description string

	// checklist maps inspection-attribute name to observed value.
	// Nil until warehouse staff populate it after pickup.
	checklist map[string]string

	// finalPrice is the sale price in minor currency units.
	// Nil until pricing is determined during review.
	finalPrice *int64

	status Status

	// redesignCount tracks traversals of the redesigned -> under_review edge.
	redesignCount int

	// version is the optimistic-concurrency revision checked on every write.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewListing creates a Listing for a freshly submitted item in requested status.
// This is the only way to create a new Listing, ensuring all invariants hold
// from the start.
//
// Parameters:
//   - id: unique identifier for the listing
//   - sellerID: identifier of the submitting seller
//   - productType: item category, e.g. "jacket" (required)
//   - brand: item brand (may be empty)
//   - condition: seller-declared physical condition
//   - description: free-form item description (may be empty)
func NewListing(
	id kernel.UUID,
	sellerID kernel.UUID,
	productType string,
	brand string,
	condition Condition,
	description string,
) (*Listing, error) {
	now := time.Now().UTC()
	l := &Listing{
		status:        StatusRequested,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setSellerID(sellerID),
		l.setProductType(productType),
		l.setCondition(condition),
	); err != nil {
		return nil, err
	}

	l.brand = brand
	l.description = description
	return l, nil
}

// RestoreListing reconstructs a Listing from persistence without applying
// creation-time defaults. The supplied state must already satisfy the
// aggregate invariants; enum values are re-validated to catch corrupt rows.
func RestoreListing(
	id kernel.UUID,
	sellerID kernel.UUID,
	productType string,
	brand string,
	condition Condition,
	description string,
	checklist map[string]string,
	finalPrice *int64,
	status Status,
	redesignCount int,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Listing, error) {
	l := &Listing{
		brand:         brand,
		description:   description,
		checklist:     checklist,
		finalPrice:    finalPrice,
		redesignCount: redesignCount,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setSellerID(sellerID),
		l.setProductType(productType),
		l.setCondition(condition),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	l.status = status
	return l, nil
}

// Validate ensures the Listing instance was properly constructed through a
// factory method. Call it when reconstructing listings from persistence.
func (l *Listing) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrListingIsNotConstructed
	}
	return nil
}

// IsEqual compares two listings by their unique identifiers.
func (l *Listing) IsEqual(other *Listing) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the listing's unique identifier.
func (l *Listing) ID() kernel.UUID {
	return l.id
}

// SellerID returns the identifier of the submitting seller.
func (l *Listing) SellerID() kernel.UUID {
	return l.sellerID
}

// ProductType returns the item category.
func (l *Listing) ProductType() string {
	return l.productType
}

// Brand returns the item brand.
func (l *Listing) Brand() string {
	return l.brand
}

// Condition returns the seller-declared physical condition.
func (l *Listing) Condition() Condition {
	return l.condition
}

// Description returns the free-form item description.
func (l *Listing) Description() string {
	return l.description
}

// Status returns the current status of the listing.
func (l *Listing) Status() Status {
	return l.status
}

// Checklist returns a copy of the inspection checklist, or nil if it has not
// been populated yet.
func (l *Listing) Checklist() map[string]string {
	if l.checklist == nil {
		return nil
	}
	out := make(map[string]string, len(l.checklist))
	for k, v := range l.checklist {
		out[k] = v
	}
	return out
}

// HasChecklist reports whether the inspection checklist has been populated.
func (l *Listing) HasChecklist() bool {
	return len(l.checklist) > 0
}

// FinalPrice returns the sale price in minor currency units,
// or nil if pricing has not been determined.
func (l *Listing) FinalPrice() *int64 {
	if l.finalPrice == nil {
		return nil
	}
	price := *l.finalPrice
	return &price
}

// RedesignCount returns how many times the listing has looped back from
// redesigned into review.
func (l *Listing) RedesignCount() int {
	return l.redesignCount
}

// Version returns the optimistic-concurrency revision the aggregate was
// loaded at. Repositories check it on every write.
func (l *Listing) Version() int {
	return l.version
}

// CreatedAt returns the submission timestamp.
func (l *Listing) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns the timestamp of the last state change.
func (l *Listing) UpdatedAt() time.Time {
	return l.updatedAt
}

// SetChecklist records the warehouse inspection checklist.
// The checklist is only settable once the item has been picked up, and never
// on a terminal listing. Items must be non-empty.
func (l *Listing) SetChecklist(items map[string]string) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("checklist")
	}
	if l.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s listing can no longer be inspected", l.status),
		)
	}
	if l.status != StatusPickedUp && l.status != StatusUnderReview && l.status != StatusRedesigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("checklist requires a picked up item, listing is %s", l.status),
		)
	}

	checklist := make(map[string]string, len(items))
	for k, v := range items {
		checklist[k] = v
	}
	l.checklist = checklist
	l.touch()
	return nil
}

// SetFinalPrice records the sale price determined during review,
// in minor currency units. The price must be positive and can only be set
// while the item is under review or redesigned.
func (l *Listing) SetFinalPrice(price int64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"final price",
			fmt.Errorf("%d is not greater than 0", price),
		)
	}
	if l.status != StatusUnderReview && l.status != StatusRedesigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("pricing requires an item in review, listing is %s", l.status),
		)
	}

	l.finalPrice = &price
	l.touch()
	return nil
}

// TransitionTo advances the listing to target along the transition graph.
// Re-applying the current status is a no-op, not an error, so achieved
// transitions stay idempotent under retries. The redesigned -> under_review
// edge is permitted at most maxRedesignLoops times.
//
// TransitionTo performs no I/O; persistence is the caller's responsibility.
func (l *Listing) TransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == l.status {
		return nil
	}

	if l.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is a terminal status", l.status),
		)
	}

	if !l.status.CanTransitionTo(target) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot transition listing from %s to %s", l.status, target),
		)
	}

	if l.status == StatusRedesigned && target == StatusUnderReview {
		if l.redesignCount >= maxRedesignLoops {
			return errs.NewValueIsInvalidErrorWithCause(
				"status",
				fmt.Errorf("listing already re-entered review %d time(s)", l.redesignCount),
			)
		}
		l.redesignCount++
	}

	l.status = target
	l.touch()
	return nil
}

func (l *Listing) touch() {
	l.updatedAt = time.Now().UTC()
}

func (l *Listing) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Listing) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	l.sellerID = sellerID
	return nil
}

func (l *Listing) setProductType(productType string) error {
	if productType == "" {
		return errs.NewValueIsRequiredError("product type")
	}
	l.productType = productType
	return nil
}

func (l *Listing) setCondition(condition Condition) error {
	if err := condition.Validate(); err != nil {
		return err
	}
	l.condition = condition
	return nil
}
