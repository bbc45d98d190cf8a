package order

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Draft ──> Pending ──> Confirmed ──> InProduction ──> QualityCheck ──> Shipped ──> Delivered
//	                                         ^                │
//	                                         └──── rework ────┘
//
// Cancelled is reachable from every non-terminal state. Delivered and Cancelled are terminal.
//
// The wire form of a Status is its kebab-case key ("in-production"); String returns it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the state of an order a customer is still editing.
	Draft

	// Pending is the state of a submitted order waiting for the shop to confirm it.
	Pending

	Confirmed
	InProduction
	QualityCheck
	Shipped

	// Delivered is the terminal success state.
	Delivered

	// Cancelled is the terminal abort state.
	Cancelled
)

type statusInfo struct {
	key     string
	label   string
	color   string
	icon    string
	percent int
	next    []Status
}

// statusTable is the single source of per-status display data and legal successors.
var statusTable = map[Status]statusInfo{
	Draft: {
		key: "draft", label: "Draft", color: "#94a3b8", icon: "fas fa-edit", percent: 5,
		next: []Status{Pending, Cancelled},
	},
	Pending: {
		key: "pending", label: "Pending", color: "#f59e0b", icon: "fas fa-clock", percent: 15,
		next: []Status{Confirmed, Cancelled},
	},
	Confirmed: {
		key: "confirmed", label: "Confirmed", color: "#3b82f6", icon: "fas fa-check-circle", percent: 30,
		next: []Status{InProduction, Cancelled},
	},
	InProduction: {
		key: "in-production", label: "In production", color: "#8b5cf6", icon: "fas fa-cogs", percent: 60,
		next: []Status{QualityCheck, Cancelled},
	},
	QualityCheck: {
		key: "quality-check", label: "Quality check", color: "#06b6d4", icon: "fas fa-search", percent: 80,
		next: []Status{Shipped, InProduction, Cancelled},
	},
	Shipped: {
		key: "shipped", label: "Shipped", color: "#10b981", icon: "fas fa-shipping-fast", percent: 90,
		next: []Status{Delivered, Cancelled},
	},
	Delivered: {
		key: "delivered", label: "Delivered", color: "#059669", icon: "fas fa-check-double", percent: 100,
	},
	Cancelled: {
		key: "cancelled", label: "Cancelled", color: "#ef4444", icon: "fas fa-times-circle", percent: 0,
	},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, Pending, Confirmed, InProduction, QualityCheck, Shipped, Delivered, Cancelled}
}

// ParseStatus converts a wire key into a Status. Keys are case-insensitive.
func ParseStatus(key string) (Status, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for s, info := range statusTable {
		if info.key == key {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", key))
}

// Validate checks if the Status value is one of the known statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := statusTable[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire key of the status, "unknown" for invalid values.
func (s Status) String() string {
	if info, ok := statusTable[s]; ok {
		return info.key
	}
	return "unknown"
}

// Label is the human-readable status name used as history entry title.
func (s Status) Label() string {
	if info, ok := statusTable[s]; ok {
		return info.label
	}
	return "Unknown"
}

func (s Status) Color() string { return statusTable[s].color }
func (s Status) Icon() string  { return statusTable[s].icon }

// ProgressPercent returns the display progress for the status, 0 for Unknown.
//
// Percent grows along every legal transition with two exceptions: edges into Cancelled
// (cancelled reports 0) and the QualityCheck -> InProduction rework edge.
func (s Status) ProgressPercent() int {
	return statusTable[s].percent
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	info, ok := statusTable[s]
	return ok && len(info.next) == 0
}

// AllowedNext returns the statuses the order may move to from s.
func (s Status) AllowedNext() []Status {
	next := statusTable[s].next
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is a legal successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range statusTable[s].next {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition checks the move from s to target without performing it.
//
// Returns:
//   - nil when target is a legal successor of s
//   - a ValueIsInvalidError when target is not a known status
//   - an InvalidTransitionError otherwise
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s, target)
	}
	return nil
}

// IsRework reports whether the move from s to target sends a part back to production.
func (s Status) IsRework(target Status) bool {
	return s == QualityCheck && target == InProduction
}

// ProgressPercent is the package-level form of Status.ProgressPercent.
func ProgressPercent(s Status) int {
	return s.ProgressPercent()
}
