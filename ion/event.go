package ion

import (
	"fmt"
	"strings"
)

// Deferred is a scalar whose bytes have been located but not yet interpreted.
// Force is pure: every call decodes the same bytes and yields the same result.
type Deferred interface {
	Force() (any, error)
}

// Event is one step of a decoded stream.
type Event struct {
	// Value is the materialized value, a Deferred, or nil for nulls, container
	// boundaries and stream signals.
	Value       any
	FieldName   *SymbolToken
	Annotations []SymbolToken
	Depth       int
	Type        EventType
	IonType     Type
}

// Stream signal events carry no value and are always emitted at the depth of
// the frame that needs data.
var (
	StreamEndEvent  = Event{Type: EventStreamEnd}
	IncompleteEvent = Event{Type: EventIncomplete}
)

// IsNull reports whether the event is a typed null.
func (e Event) IsNull() bool {
	return e.Type == EventScalar && e.Value == nil
}

// IsDeferred reports whether the value has not been materialized yet.
func (e Event) IsDeferred() bool {
	_, ok := e.Value.(Deferred)
	return ok
}

// Resolve returns the event's value, forcing it if it is deferred.
func (e Event) Resolve() (any, error) {
	if d, ok := e.Value.(Deferred); ok {
		return d.Force()
	}
	return e.Value, nil
}

// Materialize returns a copy of the event with its value forced.
func (e Event) Materialize() (Event, error) {
	v, err := e.Resolve()
	if err != nil {
		return e, err
	}
	e.Value = v
	return e, nil
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	if e.IonType != TypeNone {
		b.WriteByte(' ')
		b.WriteString(e.IonType.String())
	}
	fmt.Fprintf(&b, " depth=%d", e.Depth)
	if e.FieldName != nil {
		b.WriteString(" field=")
		b.WriteString(e.FieldName.String())
	}
	if len(e.Annotations) > 0 {
		b.WriteString(" annotations=")
		for i, a := range e.Annotations {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(a.String())
		}
	}
	switch {
	case e.IsDeferred():
		b.WriteString(" value=<deferred>")
	case e.Type == EventScalar && e.Value == nil:
		b.WriteString(" value=null")
	case e.Value != nil:
		fmt.Fprintf(&b, " value=%v", e.Value)
	}
	return b.String()
}
