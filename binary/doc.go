// Package binary implements an incremental decoder for the Ion 1.0 binary
// encoding.
//
// The decoder is driven by requests and answers each one with exactly one
// event:
//
//	Next  - decode the next value, container boundary or version marker
//	Skip  - discard the rest of the current container and report its end
//	Data  - append bytes and resume the request that ran out of input
//
// When input runs out the decoder returns EventIncomplete (inside a value or
// container) or EventStreamEnd (at top level between values) and waits for
// Data. No bytes are consumed by an attempt that ends this way, so chunk
// boundaries never change the event sequence.
//
// # Usage
//
//	d := binary.NewDecoder()
//	ev, err := d.Data(chunk)
//	for err == nil {
//	    switch ev.Type {
//	    case ion.EventIncomplete, ion.EventStreamEnd:
//	        ev, err = d.Data(nextChunk())
//	        continue
//	    case ion.EventScalar:
//	        v, ferr := ev.Resolve()
//	        ...
//	    }
//	    ev, err = d.Next()
//	}
//
// # Deferred Values
//
// Scalars other than nulls, bools and zero-length values are returned as
// Thunk values. A Thunk holds the value bytes and decodes them on Force, so
// errors in a value's payload (bad UTF-8, out-of-range timestamp fields)
// surface from Force rather than from the request that produced the event.
// Config.Eager moves that work to the request.
//
// # Value Mapping
//
//	Ion type     Go type
//	─────────────────────────────────────────
//	bool         bool
//	int          int64, or *big.Int when wider
//	float        float64
//	decimal      *apd.Decimal
//	timestamp    ion.Timestamp
//	symbol       ion.SymbolToken
//	string       string
//	clob, blob   []byte (aliases decoder input)
//
// # Errors
//
// Structural errors and protocol violations invalidate the decoder; every
// later request returns the same *errors.Error. Use errors.IsMalformed and
// errors.IsProtocolViolation to classify them.
package binary
