// Package order provides the Order aggregate of the print shop and the values it is made of.
//
// The package includes:
//   - Order: the aggregate root holding customer, specification, quote and status timeline
//   - Status: the lifecycle state machine with its display table (label, color, icon, progress)
//   - Specification: what the customer asked for (service, material, quantity, finish, shipping)
//   - PricingBreakdown: an immutable, rounded quote
//   - HistoryEntry: one append-only record of the timeline
//
// Key business rules:
//   - Orders start as Draft and are submitted to Pending once priced
//   - Status moves only along the transition table; Delivered and Cancelled are terminal
//   - Re-applying the current status is a no-op, never a duplicate history entry
//   - Pricing is frozen after submission and never edited by hand
package order
