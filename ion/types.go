package ion

// Type is the logical type of a value.
type Type uint8

const (
	TypeNone Type = iota // no logical type, used by stream signal events
	TypeNull
	TypeBool
	TypeInt
	TypeFloat
	TypeDecimal
	TypeTimestamp
	TypeSymbol
	TypeString
	TypeClob
	TypeBlob
	TypeList
	TypeSexp
	TypeStruct
)

var typeNames = [...]string{
	TypeNone:      "none",
	TypeNull:      "null",
	TypeBool:      "bool",
	TypeInt:       "int",
	TypeFloat:     "float",
	TypeDecimal:   "decimal",
	TypeTimestamp: "timestamp",
	TypeSymbol:    "symbol",
	TypeString:    "string",
	TypeClob:      "clob",
	TypeBlob:      "blob",
	TypeList:      "list",
	TypeSexp:      "sexp",
	TypeStruct:    "struct",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsContainer reports whether values of this type hold nested values.
func (t Type) IsContainer() bool {
	return t == TypeList || t == TypeSexp || t == TypeStruct
}

// EventType identifies what an Event describes.
type EventType uint8

const (
	EventScalar EventType = iota
	EventContainerStart
	EventContainerEnd
	EventVersionMarker
	EventIncomplete // more input is needed to finish the current value
	EventStreamEnd  // the stream may legally end here; more input may follow
)

var eventTypeNames = [...]string{
	EventScalar:         "scalar",
	EventContainerStart: "container_start",
	EventContainerEnd:   "container_end",
	EventVersionMarker:  "version_marker",
	EventIncomplete:     "incomplete",
	EventStreamEnd:      "stream_end",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// IsStreamSignal reports whether the event asks the caller for more data.
func (t EventType) IsStreamSignal() bool {
	return t == EventIncomplete || t == EventStreamEnd
}
