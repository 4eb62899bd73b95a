package binary

import (
	"github.com/wippyai/ion-binary/errors"
	"github.com/wippyai/ion-binary/ion"
)

// codec selects how a Thunk interprets its bytes.
type codec uint8

const (
	codecPosInt codec = iota
	codecNegInt
	codecFloat
	codecDecimal
	codecTimestamp
	codecSymbol
	codecString
	codecLob
)

var codecNames = [...]string{
	codecPosInt:    "int",
	codecNegInt:    "negative int",
	codecFloat:     "float",
	codecDecimal:   "decimal",
	codecTimestamp: "timestamp",
	codecSymbol:    "symbol",
	codecString:    "string",
	codecLob:       "lob",
}

func (c codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return "unknown"
}

// Thunk is a scalar whose bytes have been sliced from the stream but not
// interpreted. It implements ion.Deferred.
type Thunk struct {
	data     []byte
	resolver ion.SymbolResolver
	offset   int64
	codec    codec
}

var _ ion.Deferred = Thunk{}

// Bytes returns the raw value bytes. The slice may alias decoder input and
// must not be modified.
func (t Thunk) Bytes() []byte {
	return t.data
}

// Offset returns the absolute stream offset of the first value byte.
func (t Thunk) Offset() int64 {
	return t.offset
}

// Force decodes the value. It has no side effects and may be called any
// number of times.
func (t Thunk) Force() (any, error) {
	switch t.codec {
	case codecPosInt:
		return decodeInt(t.data, false), nil
	case codecNegInt:
		return decodeInt(t.data, true), nil
	case codecFloat:
		return decodeFloat(t.data, t.offset, errors.PhaseMaterialize)
	case codecDecimal:
		return decodeDecimal(t.data, t.offset)
	case codecTimestamp:
		return decodeTimestamp(t.data, t.offset)
	case codecSymbol:
		sid, err := decodeSymbolID(t.data, t.offset)
		if err != nil {
			return nil, err
		}
		tok := ion.NewSymbolToken(sid)
		if t.resolver != nil {
			tok = t.resolver.Resolve(tok)
		}
		return tok, nil
	case codecString:
		return decodeString(t.data, t.offset)
	case codecLob:
		return t.data, nil
	}
	return nil, errors.Malformed(errors.PhaseMaterialize, t.offset, "no codec %d", t.codec)
}
