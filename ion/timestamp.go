package ion

import (
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// TimestampPrecision records which timestamp fields were present in the encoding.
type TimestampPrecision uint8

const (
	PrecisionYear TimestampPrecision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionMinute
	PrecisionSecond
)

var precisionNames = [...]string{
	PrecisionYear:   "year",
	PrecisionMonth:  "month",
	PrecisionDay:    "day",
	PrecisionMinute: "minute",
	PrecisionSecond: "second",
}

func (p TimestampPrecision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return "unknown"
}

// Timestamp is a point in time together with the precision it was written at.
type Timestamp struct {
	// Time holds the instant in the encoded offset's zone, or UTC when the
	// offset is unknown. Sub-nanosecond fraction digits are truncated.
	Time time.Time

	// Fraction is the exact fractional second, nil when absent.
	Fraction *apd.Decimal

	Precision TimestampPrecision

	// OffsetKnown is false for the "-00:00" unknown local offset.
	OffsetKnown bool
}

// FractionDigits returns the number of fractional-second digits, 0 when absent.
func (ts Timestamp) FractionDigits() int {
	if ts.Fraction == nil || ts.Fraction.Exponent >= 0 {
		return 0
	}
	return int(-ts.Fraction.Exponent)
}

// OffsetMinutes returns the UTC offset in minutes; 0 when unknown.
func (ts Timestamp) OffsetMinutes() int {
	if !ts.OffsetKnown {
		return 0
	}
	_, off := ts.Time.Zone()
	return off / 60
}

// Equal reports whether two timestamps denote the same instant at the same
// precision, fraction and offset.
func (ts Timestamp) Equal(o Timestamp) bool {
	if ts.Precision != o.Precision || ts.OffsetKnown != o.OffsetKnown {
		return false
	}
	if !ts.Time.Equal(o.Time) || ts.OffsetMinutes() != o.OffsetMinutes() {
		return false
	}
	if (ts.Fraction == nil) != (o.Fraction == nil) {
		return false
	}
	if ts.Fraction == nil {
		return true
	}
	return ts.Fraction.Cmp(o.Fraction) == 0 && ts.Fraction.Exponent == o.Fraction.Exponent
}

func (ts Timestamp) String() string {
	var layout string
	switch ts.Precision {
	case PrecisionYear:
		layout = "2006T"
	case PrecisionMonth:
		layout = "2006-01T"
	case PrecisionDay:
		layout = "2006-01-02"
	case PrecisionMinute:
		layout = "2006-01-02T15:04"
	default:
		layout = "2006-01-02T15:04:05"
	}
	s := ts.Time.Format(layout)
	if ts.Precision == PrecisionSecond && ts.Fraction != nil {
		s += fractionText(ts.Fraction)
	}
	if ts.Precision < PrecisionMinute {
		return s
	}
	if !ts.OffsetKnown {
		return s + "-00:00"
	}
	if ts.OffsetMinutes() == 0 {
		return s + "Z"
	}
	return s + ts.Time.Format("-07:00")
}

// fractionText renders a fraction in [0, 1) as ".ddd", keeping trailing zeros.
func fractionText(d *apd.Decimal) string {
	digits := -int(d.Exponent)
	if digits <= 0 {
		return ""
	}
	coeff := d.Coeff.String()
	if len(coeff) < digits {
		coeff = strings.Repeat("0", digits-len(coeff)) + coeff
	}
	return "." + coeff[len(coeff)-digits:]
}
