package binary

import (
	"math"
	"math/big"

	"github.com/wippyai/ion-binary/errors"
)

// Variable-width and fixed-width integer codecs.
//
// VarUInt and VarInt fields chain octets most-significant first; the octet
// with its high bit set is the last one. UInt and Int fields have a length
// known from the enclosing value and use all eight bits of every octet, Int
// reserving the first octet's high bit for the sign.

// parseVarUInt decodes a VarUInt at the front of data, returning the value and
// the number of octets consumed. The field must terminate within data.
func parseVarUInt(data []byte, offset int64, phase errors.Phase) (uint64, int, error) {
	var value uint64
	for i, b := range data {
		if value > math.MaxUint64>>varValueBits {
			return 0, 0, errors.Overflow(phase, offset, "VarUInt", 64)
		}
		value = value<<varValueBits | uint64(b&varValueMask)
		if b&varEndMask != 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, errors.Malformed(phase, offset+int64(len(data)),
		"VarUInt not terminated within %d bytes", len(data))
}

// parseVarInt decodes a VarInt at the front of data as sign and magnitude so
// that negative zero survives.
func parseVarInt(data []byte, offset int64) (neg bool, mag uint64, n int, err error) {
	if len(data) == 0 {
		return false, 0, 0, errors.Malformed(errors.PhaseMaterialize, offset, "empty VarInt")
	}
	first := data[0]
	neg = first&varSignMask != 0
	mag = uint64(first & varSignValueMask)
	if first&varEndMask != 0 {
		return neg, mag, 1, nil
	}
	rest, used, err := parseVarUIntFrom(mag, data[1:], offset)
	if err != nil {
		return false, 0, 0, err
	}
	return neg, rest, used + 1, nil
}

// parseVarUIntFrom continues a VarUInt whose leading bits are already in acc.
func parseVarUIntFrom(acc uint64, data []byte, offset int64) (uint64, int, error) {
	for i, b := range data {
		if acc > math.MaxUint64>>varValueBits {
			return 0, 0, errors.Overflow(errors.PhaseMaterialize, offset, "VarInt", 64)
		}
		acc = acc<<varValueBits | uint64(b&varValueMask)
		if b&varEndMask != 0 {
			return acc, i + 1, nil
		}
	}
	return 0, 0, errors.Malformed(errors.PhaseMaterialize, offset+int64(len(data)),
		"VarInt not terminated within %d bytes", len(data)+1)
}

// parseUIntSmall decodes a UInt that must fit in 64 bits.
func parseUIntSmall(data []byte, offset int64, what string) (uint64, error) {
	data = trimLeadingZeros(data)
	if len(data) > 8 {
		return 0, errors.Overflow(errors.PhaseMaterialize, offset, what, 64)
	}
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// parseSignedMagnitude decodes an Int: the first octet's high bit is the sign,
// everything else is the big-endian magnitude. An empty slice is zero.
func parseSignedMagnitude(data []byte) (neg bool, mag *big.Int) {
	if len(data) == 0 {
		return false, new(big.Int)
	}
	neg = data[0]&intSignMask != 0
	if data[0]&intSignValueMask == data[0] {
		return neg, new(big.Int).SetBytes(data)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	buf[0] &= intSignValueMask
	return neg, new(big.Int).SetBytes(buf)
}

// parseSIDs decodes a block of concatenated VarUInt symbol ids.
func parseSIDs(data []byte, offset int64) ([]uint64, error) {
	var sids []uint64
	for len(data) > 0 {
		sid, n, err := parseVarUInt(data, offset, errors.PhaseRead)
		if err != nil {
			return nil, err
		}
		sids = append(sids, sid)
		data = data[n:]
		offset += int64(n)
	}
	return sids, nil
}

func trimLeadingZeros(data []byte) []byte {
	for len(data) > 0 && data[0] == 0 {
		data = data[1:]
	}
	return data
}
