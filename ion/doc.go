// Package ion defines the data model shared by the binary decoder and its callers.
//
// A decoder emits a depth-first sequence of Event values. Each event has an
// EventType (scalar, container start/end, version marker or one of the two
// stream signals), the logical Type of the value it describes, the nesting
// depth at which it was emitted, its annotations and, for struct members, its
// field name.
//
// Scalar values that are costly to interpret are not materialized by the decoder.
// Such events carry a Deferred value instead; Event.Resolve forces it:
//
//	v, err := ev.Resolve()
//	if err != nil {
//	    return err
//	}
//
// Materialized values use the following Go types:
//
//	Bool       bool
//	Int        int64, or *big.Int when the value does not fit 64 bits
//	Float      float64
//	Decimal    *apd.Decimal
//	Timestamp  Timestamp
//	Symbol     SymbolToken
//	String     string
//	Clob/Blob  []byte
//
// A null of any type carries a nil value.
package ion
