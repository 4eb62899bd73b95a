package binary

import (
	"encoding/binary"
	"math"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"

	"github.com/wippyai/ion-binary/errors"
	"github.com/wippyai/ion-binary/ion"
)

// decodeInt decodes a UInt magnitude with an externally known sign. Values
// that fit int64 are returned as int64, wider ones as *big.Int.
func decodeInt(data []byte, neg bool) any {
	mag := trimLeadingZeros(data)
	if len(mag) <= 8 {
		var u uint64
		for _, b := range mag {
			u = u<<8 | uint64(b)
		}
		switch {
		case !neg && u <= math.MaxInt64:
			return int64(u)
		case neg && u <= math.MaxInt64:
			return -int64(u)
		case neg && u == 1<<63:
			return int64(math.MinInt64)
		}
	}
	v := new(big.Int).SetBytes(mag)
	if neg {
		v.Neg(v)
	}
	return v
}

// decodeFloat decodes a big-endian IEEE-754 value of 0, 4 or 8 bytes.
func decodeFloat(data []byte, offset int64, phase errors.Phase) (float64, error) {
	switch len(data) {
	case 0:
		return 0, nil
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(data))), nil
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
	}
	return 0, errors.New(phase, errors.KindMalformed).
		Offset(offset).
		Expected("4 or 8 bytes").
		Actual("%d bytes", len(data)).
		Detail("unsupported float length").
		Build()
}

// decodeDecimal decodes a VarInt exponent followed by an Int coefficient
// spanning the rest of data. Signed zero and the coefficient's digit count are
// preserved.
func decodeDecimal(data []byte, offset int64) (*apd.Decimal, error) {
	if len(data) == 0 {
		return new(apd.Decimal), nil
	}
	expNeg, expMag, n, err := parseVarInt(data, offset)
	if err != nil {
		return nil, err
	}
	if expMag > math.MaxInt32 {
		return nil, errors.Overflow(errors.PhaseMaterialize, offset, "decimal exponent", 32)
	}
	exp := int32(expMag)
	if expNeg {
		exp = -exp
	}
	neg, coeff := parseSignedMagnitude(data[n:])
	d := &apd.Decimal{Negative: neg, Exponent: exp}
	d.Coeff.SetMathBigInt(coeff)
	return d, nil
}

// decodeTimestamp decodes an offset VarInt, a year and then whichever of
// month, day, hour+minute, second and fractional second remain. Fields are UTC.
func decodeTimestamp(data []byte, offset int64) (ion.Timestamp, error) {
	var ts ion.Timestamp
	bad := func(at int, detail string, args ...any) (ion.Timestamp, error) {
		return ion.Timestamp{}, errors.Malformed(errors.PhaseMaterialize, offset+int64(at), detail, args...)
	}

	offNeg, offMag, pos, err := parseVarInt(data, offset)
	if err != nil {
		return ts, err
	}
	ts.OffsetKnown = !(offNeg && offMag == 0)
	if offMag >= 24*60 {
		return bad(0, "timestamp offset %d minutes out of range", offMag)
	}
	offMinutes := int(offMag)
	if offNeg {
		offMinutes = -offMinutes
	}

	field := func() (int, error) {
		v, n, err := parseVarUInt(data[pos:], offset+int64(pos), errors.PhaseMaterialize)
		if err != nil {
			return 0, err
		}
		pos += n
		if v > math.MaxInt32 {
			return 0, errors.Overflow(errors.PhaseMaterialize, offset+int64(pos-n), "timestamp field", 31)
		}
		return int(v), nil
	}
	more := func() bool { return pos < len(data) }

	if !more() {
		return bad(pos, "timestamp has no year")
	}
	year, err := field()
	if err != nil {
		return ts, err
	}
	month, day, hour, minute, second := 1, 1, 0, 0, 0
	ts.Precision = ion.PrecisionYear

	if more() {
		if month, err = field(); err != nil {
			return ts, err
		}
		ts.Precision = ion.PrecisionMonth
	}
	if more() {
		if day, err = field(); err != nil {
			return ts, err
		}
		ts.Precision = ion.PrecisionDay
	}
	if more() {
		if hour, err = field(); err != nil {
			return ts, err
		}
		if !more() {
			return bad(pos, "timestamp hour without minute")
		}
		if minute, err = field(); err != nil {
			return ts, err
		}
		ts.Precision = ion.PrecisionMinute
	}
	if more() {
		if second, err = field(); err != nil {
			return ts, err
		}
		ts.Precision = ion.PrecisionSecond
	}

	nanos := 0
	if more() {
		fracAt := pos
		frac, err := decodeDecimal(data[pos:], offset+int64(pos))
		if err != nil {
			return ts, err
		}
		zero := frac.Coeff.Sign() == 0
		switch {
		case zero && frac.Exponent >= 0:
			// zero fraction at whole-second precision carries no information
		case frac.Negative && !zero:
			return bad(fracAt, "timestamp fraction %s is negative", frac.String())
		case frac.Exponent < -maxFractionDigits:
			return bad(fracAt, "timestamp fraction has %d digits, at most %d allowed", -int64(frac.Exponent), maxFractionDigits)
		case !fractionBelowOne(frac):
			return bad(fracAt, "timestamp fraction %s is not below one", frac.String())
		default:
			ts.Fraction = frac
			nanos = fractionNanos(frac)
		}
	}

	switch {
	case year < 1 || year > 9999:
		return bad(0, "timestamp year %d out of range", year)
	case month < 1 || month > 12:
		return bad(0, "timestamp month %d out of range", month)
	case day < 1 || day > daysIn(year, month):
		return bad(0, "timestamp day %d out of range for %04d-%02d", day, year, month)
	case hour > 23 || minute > 59 || second > 59:
		return bad(0, "timestamp time %02d:%02d:%02d out of range", hour, minute, second)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, nanos, time.UTC)
	if ts.OffsetKnown {
		t = t.In(time.FixedZone("", offMinutes*60))
	}
	ts.Time = t
	return ts, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// maxFractionDigits bounds the digits of a timestamp fraction. Longer
// fractions are rejected so rendering stays proportional to the input.
const maxFractionDigits = 256

var bigTen = big.NewInt(10)

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(n), nil)
}

// fractionBelowOne reports whether a non-negative decimal is below one.
// Only digit counts are compared, so the exponent never drives the work.
func fractionBelowOne(d *apd.Decimal) bool {
	if d.Coeff.Sign() == 0 {
		return true
	}
	if d.Exponent >= 0 {
		return false
	}
	return d.NumDigits() <= -int64(d.Exponent)
}

// fractionNanos truncates a fraction in [0, 1) to nanoseconds.
func fractionNanos(d *apd.Decimal) int {
	shift := int64(d.Exponent) + 9
	if shift >= 0 {
		// d < 1 with at most 9 fraction digits, so the product is below 1e9
		coeff := d.Coeff.MathBigInt()
		return int(coeff.Mul(coeff, pow10(shift)).Int64())
	}
	if -shift >= d.NumDigits() {
		return 0
	}
	coeff := d.Coeff.MathBigInt()
	return int(coeff.Quo(coeff, pow10(-shift)).Int64())
}

func decodeString(data []byte, offset int64) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseMaterialize, offset, data)
	}
	return string(data), nil
}

func decodeSymbolID(data []byte, offset int64) (uint64, error) {
	return parseUIntSmall(data, offset, "symbol id")
}
