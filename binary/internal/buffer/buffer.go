// Package buffer implements ionbinary.Buffer as a persistent queue of shared chunks.
package buffer

import (
	ionbinary "github.com/wippyai/ion-binary"
	"github.com/wippyai/ion-binary/errors"
)

// Queue is an immutable view over a sequence of chunks plus an offset into the
// first one. Chunks are shared between views and never written to.
type Queue struct {
	chunks [][]byte
	off    int
	size   int
	pos    int64
}

var _ ionbinary.Buffer = Queue{}

// New returns an empty queue positioned at offset 0.
func New() Queue {
	return Queue{}
}

// FromBytes returns a queue holding data as its only chunk.
func FromBytes(data []byte) Queue {
	return New().extend(data)
}

// Len returns the number of buffered bytes.
func (q Queue) Len() int {
	return q.size
}

// Position returns the absolute offset of the next unread byte.
func (q Queue) Position() int64 {
	return q.pos
}

// Peek returns the next byte without consuming it.
func (q Queue) Peek() (byte, error) {
	if q.size == 0 {
		return 0, errors.Incomplete(q.pos, 1, 0)
	}
	return q.chunks[0][q.off], nil
}

// ReadByte consumes a single byte.
func (q Queue) ReadByte() (byte, ionbinary.Buffer, error) {
	if q.size == 0 {
		return 0, q, errors.Incomplete(q.pos, 1, 0)
	}
	b := q.chunks[0][q.off]
	return b, q.advance(1), nil
}

// ReadSlice consumes exactly n bytes. The result aliases the chunk when the
// bytes lie within a single chunk and is a fresh copy otherwise; either way it
// must be treated as read-only.
func (q Queue) ReadSlice(n int) ([]byte, ionbinary.Buffer, error) {
	if n < 0 {
		return nil, q, errors.Malformed(errors.PhaseRead, q.pos, "negative read length %d", n)
	}
	if n > q.size {
		return nil, q, errors.Incomplete(q.pos, n, q.size)
	}
	if n == 0 {
		return []byte{}, q, nil
	}
	first := q.chunks[0]
	if q.off+n <= len(first) {
		return first[q.off : q.off+n : q.off+n], q.advance(n), nil
	}
	out := make([]byte, 0, n)
	off := q.off
	for _, c := range q.chunks {
		take := len(c) - off
		if take > n-len(out) {
			take = n - len(out)
		}
		out = append(out, c[off:off+take]...)
		off = 0
		if len(out) == n {
			break
		}
	}
	return out, q.advance(n), nil
}

// Skip consumes up to n bytes and returns how many were consumed.
func (q Queue) Skip(n int) (int, ionbinary.Buffer) {
	if n <= 0 {
		return 0, q
	}
	if n > q.size {
		n = q.size
	}
	return n, q.advance(n)
}

// Extend appends chunk to the end of the stream. Empty chunks are ignored.
func (q Queue) Extend(chunk []byte) ionbinary.Buffer {
	return q.extend(chunk)
}

func (q Queue) extend(chunk []byte) Queue {
	if len(chunk) == 0 {
		return q
	}
	// The three-index slice forces append to copy, so views that share the
	// old chunk list never observe the new chunk.
	q.chunks = append(q.chunks[:len(q.chunks):len(q.chunks)], chunk)
	q.size += len(chunk)
	return q
}

// advance drops n bytes from the front; n must not exceed q.size.
func (q Queue) advance(n int) Queue {
	q.size -= n
	q.pos += int64(n)
	for n > 0 {
		rem := len(q.chunks[0]) - q.off
		if n < rem {
			q.off += n
			break
		}
		n -= rem
		q.chunks = q.chunks[1:]
		q.off = 0
	}
	if len(q.chunks) == 0 {
		q.chunks = nil
	}
	return q
}
