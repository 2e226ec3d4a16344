// Package pickup provides the PickupRequest aggregate for assigning listings
// to delivery agents for physical collection.
//
// The package includes:
//   - PickupRequest: The aggregate root linking a listing to a delivery agent
//   - Status: A state machine that enforces valid pickup request transitions
//
// Key business rules:
//   - Requests follow the workflow: pending -> accepted -> picked_up
//   - Cancellation is only reachable from pending or accepted, never from picked_up
//   - picked_up and cancelled are terminal; the request is immutable afterwards
//   - A request reaching picked_up obligates the linked listing to move to
//     picked_up in the same logical write (fulfilled by the coordinator)
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package pickup
