package kernel

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	trackingCodePrefix = "IMP3D"
	trackingSuffixLen  = 6
)

var trackingCodePattern = regexp.MustCompile(`^IMP3D-\d{4}(0[1-9]|1[0-2])-[0-9A-Z]{6}$`)

// TrackingCode is the customer-facing order reference, IMP3D-YYYYMM-XXXXXX.
// Customers look orders up by code together with their e-mail address.
type TrackingCode struct {
	value string
}

// NewTrackingCode builds a code for an order submitted at the given time. The suffix is
// six base-36 characters taken from a fresh random UUID.
func NewTrackingCode(at time.Time) TrackingCode {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8])
	suffix := strings.ToUpper(strconv.FormatUint(n, 36))
	if len(suffix) < trackingSuffixLen {
		suffix = strings.Repeat("0", trackingSuffixLen-len(suffix)) + suffix
	}
	return TrackingCode{
		value: fmt.Sprintf("%s-%s-%s", trackingCodePrefix, at.UTC().Format("200601"), suffix[:trackingSuffixLen]),
	}
}

// ParseTrackingCode accepts codes in any letter case and normalizes them to upper case.
func ParseTrackingCode(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !trackingCodePattern.MatchString(normalized) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code",
			fmt.Errorf("%q does not match %s-YYYYMM-XXXXXX", s, trackingCodePrefix),
		)
	}
	return TrackingCode{value: normalized}, nil
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

func (c TrackingCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	return nil
}

// LookupKey pairs the code with the customer's e-mail; both have to match for a
// customer to see an order.
func (c TrackingCode) LookupKey(email string) string {
	return c.value + ":" + strings.ToLower(strings.TrimSpace(email))
}
