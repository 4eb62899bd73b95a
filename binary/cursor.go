package binary

import (
	"math"

	ionbinary "github.com/wippyai/ion-binary"
	"github.com/wippyai/ion-binary/errors"
)

// cursor is a tentative read position. It advances a private copy of the
// decoder's buffer view, bounded by the innermost limit in effect, so a failed
// attempt is discarded simply by dropping the cursor.
type cursor struct {
	buf   ionbinary.Buffer
	limit int64
}

func (c *cursor) pos() int64 {
	return c.buf.Position()
}

// ensure fails if n more bytes would cross the limit.
func (c *cursor) ensure(n int64) error {
	if c.limit == unbounded {
		return nil
	}
	if remaining := c.limit - c.pos(); n > remaining {
		return errors.New(errors.PhaseRead, errors.KindMalformed).
			Offset(c.pos()).
			Expected("at most %d bytes", remaining).
			Actual("%d bytes", n).
			Detail("declared container length violated").
			Build()
	}
	return nil
}

func (c *cursor) readByte() (byte, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	b, next, err := c.buf.ReadByte()
	if err != nil {
		return 0, err
	}
	c.buf = next
	return b, nil
}

// readVarUInt reads a VarUInt octet by octet. It fails with an incomplete error
// when the terminating octet is not buffered yet.
func (c *cursor) readVarUInt() (uint64, error) {
	start := c.pos()
	var value uint64
	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		if value > math.MaxUint64>>varValueBits {
			return 0, errors.Overflow(errors.PhaseRead, start, "VarUInt", 64)
		}
		value = value<<varValueBits | uint64(b&varValueMask)
		if b&varEndMask != 0 {
			return value, nil
		}
	}
}

// readLength returns the value length for h, reading the VarUInt length field
// when the nibble calls for one.
func (c *cursor) readLength(h handler) (int64, error) {
	if !h.explicitLength() {
		return int64(h.length), nil
	}
	start := c.pos()
	n, err := c.readVarUInt()
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, errors.Overflow(errors.PhaseRead, start, "value length", 31)
	}
	return int64(n), nil
}

func (c *cursor) readSlice(n int64) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	data, next, err := c.buf.ReadSlice(int(n))
	if err != nil {
		return nil, err
	}
	c.buf = next
	return data, nil
}
