// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the relist system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - Lifecycle: A domain service validating and applying status transitions for
//     listings and pickup requests, enforcing actor permissions and field-presence
//     invariants, and emitting cross-entity obligations for the coordinator to fulfill
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
