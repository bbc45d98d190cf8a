// Package services provides domain services of the print shop that do not belong to a
// single aggregate.
//
// The package includes:
//   - PricingEngine: computes a PricingBreakdown from a specification, catalog data and
//     a RateConfiguration
//   - OrderLifecycle: applies status transitions using an injected Clock
//
// Both are pure: they keep no state between calls and never read global configuration.
package services
