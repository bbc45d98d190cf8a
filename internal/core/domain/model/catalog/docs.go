// Package catalog holds the reference data the shop sells and prices against:
//   - Service: a sellable offering (PLA printing, basic design, post-processing) with a
//     base rate, pricing unit, pricing mode and the materials it can be made from
//   - Material: a printable substance with a per-gram price and print parameters
//
// Catalog values are immutable. Administration replaces them wholesale; the pricing
// engine only reads them.
package catalog
