package order

import (
	"errors"
	"strings"
	"time"

	"printshop/internal/pkg/errs"
)

// HistoryPrecision is the timestamp resolution kept in history. It matches what
// PostgreSQL timestamptz stores, so entries compare equal after a round trip.
const HistoryPrecision = time.Microsecond

// HistoryEntry is one append-only record of the order timeline.
type HistoryEntry struct {
	status      Status
	at          time.Time
	title       string
	description string
}

// NewHistoryEntry builds an entry. An empty title defaults to the status label and an
// empty description to "Status updated to <label>".
func NewHistoryEntry(status Status, at time.Time, title, description string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history timestamp")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = status.Label()
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultDescription(status)
	}

	return HistoryEntry{
		status:      status,
		at:          at.UTC().Truncate(HistoryPrecision),
		title:       title,
		description: description,
	}, nil
}

// DefaultDescription is the text recorded when a transition carries no description.
func DefaultDescription(s Status) string {
	return "Status updated to " + s.Label()
}

func (e HistoryEntry) Status() Status      { return e.status }
func (e HistoryEntry) At() time.Time       { return e.at }
func (e HistoryEntry) Title() string       { return e.title }
func (e HistoryEntry) Description() string { return e.description }

var errHistoryIsNotIncreasing = errors.New("timestamps are not strictly increasing")

func validateHistory(history []HistoryEntry) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("history")
	}
	for i := 1; i < len(history); i++ {
		if !history[i].at.After(history[i-1].at) {
			return errs.NewValueIsInvalidErrorWithCause("history", errHistoryIsNotIncreasing)
		}
	}
	return nil
}
