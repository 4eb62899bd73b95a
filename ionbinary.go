package ionbinary

// Buffer is a persistent view over a logical byte stream delivered in chunks.
//
// Every operation returns a new view and leaves the receiver untouched, so a
// caller can attempt a multi-step read and discard the partial result by
// keeping the original view. Reads that need more bytes than are buffered fail
// with an error for which errors.IsIncomplete reports true; such failures are
// not fatal.
type Buffer interface {
	// ReadByte consumes one byte.
	ReadByte() (byte, Buffer, error)
	// ReadSlice consumes exactly n bytes.
	ReadSlice(n int) ([]byte, Buffer, error)
	// Peek returns the next byte without consuming it.
	Peek() (byte, error)
	// Skip consumes up to n bytes and reports how many were consumed.
	Skip(n int) (int, Buffer)
	// Extend appends a chunk to the end of the stream.
	// The buffer retains chunk; the caller must not modify it afterwards.
	Extend(chunk []byte) Buffer
	// Len returns the number of buffered, unconsumed bytes.
	Len() int
	// Position returns the absolute number of bytes consumed so far.
	Position() int64
}
