// Package listing provides the Listing aggregate and business logic for items
// moving through the pickup-and-redesign pipeline.
//
// The package includes:
//   - Listing: The aggregate root that manages item identity, inspection data, pricing, and lifecycle
//   - Status: A state machine that enforces valid listing status transitions via an explicit adjacency table
//   - Condition: The seller-declared physical condition of the item
//
// Key business rules:
//   - Listings follow the workflow: requested -> assigned -> picked_up -> under_review -> {redesigned, listed, rejected}
//   - Redesigned items may loop back into review at most once
//   - The inspection checklist is only settable once the item has been picked up
//   - Reaching under_review requires a populated checklist; reaching listed requires a final price
//   - listed and rejected are terminal states, retained for audit
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package listing
