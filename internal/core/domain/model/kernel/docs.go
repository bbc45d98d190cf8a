// Package kernel provides the value objects shared by the print shop domain model:
//   - UUID: internal identifier of orders
//   - TrackingCode: the customer-facing order reference (IMP3D-YYYYMM-XXXXXX)
//   - RoundMoney / SumMoney: the single rounding point for every displayed amount
//
// Values are immutable and safe for concurrent use.
package kernel
