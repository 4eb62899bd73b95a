package binary

import (
	"math"

	"go.uber.org/zap"

	ionbinary "github.com/wippyai/ion-binary"
	"github.com/wippyai/ion-binary/binary/internal/buffer"
	"github.com/wippyai/ion-binary/errors"
	"github.com/wippyai/ion-binary/ion"
)

// RequestKind identifies a caller request.
type RequestKind uint8

const (
	RequestNext RequestKind = iota // decode the next event
	RequestSkip                    // discard the rest of the current container
	RequestData                    // supply more input
)

func (k RequestKind) String() string {
	switch k {
	case RequestNext:
		return "next"
	case RequestSkip:
		return "skip"
	case RequestData:
		return "data"
	}
	return "unknown"
}

// Request is one step of the decoder protocol.
type Request struct {
	Data []byte // RequestData only; retained by the decoder, must not be modified
	Kind RequestKind
}

// Config holds decoder configuration. A nil Config means defaults.
type Config struct {
	// Logger receives debug events about suspension and container bookkeeping.
	// Defaults to the package logger.
	Logger *zap.Logger

	// Resolver attaches text to field names, annotations and forced symbol
	// values. Nil leaves symbol text unresolved.
	Resolver ion.SymbolResolver

	// MaxDepth limits container nesting. 0 means unlimited.
	MaxDepth int

	// Eager materializes every deferred scalar before it is returned, so value
	// errors surface from the request that produced the event.
	Eager bool
}

// Decoder is a resumable Ion binary decoder. It holds no goroutines and never
// blocks: when it needs input it returns an incomplete or stream-end event and
// waits for Data.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	buf      ionbinary.Buffer
	log      *zap.Logger
	resolver ion.SymbolResolver
	err      error
	stack    frameStack

	// skip is the number of bytes still to discard before the next value,
	// left over from padding or a Skip request that outran the buffer.
	skip int64

	maxDepth int
	eager    bool
	needData bool
	started  bool
	sawIVM   bool
}

// NewDecoder creates a decoder with default configuration.
func NewDecoder() *Decoder {
	return NewDecoderWithConfig(nil)
}

// NewDecoderWithConfig creates a decoder with custom configuration.
func NewDecoderWithConfig(cfg *Config) *Decoder {
	d := &Decoder{
		buf:   buffer.New(),
		stack: newFrameStack(),
		log:   Logger(),
	}
	if cfg != nil {
		if cfg.Logger != nil {
			d.log = cfg.Logger
		}
		d.resolver = cfg.Resolver
		d.maxDepth = cfg.MaxDepth
		d.eager = cfg.Eager
	}
	return d
}

// Next decodes the next event.
func (d *Decoder) Next() (ion.Event, error) {
	return d.Step(Request{Kind: RequestNext})
}

// Skip discards the undecoded remainder of the current container and returns
// its end event.
func (d *Decoder) Skip() (ion.Event, error) {
	return d.Step(Request{Kind: RequestSkip})
}

// Data appends chunk to the stream and resumes the request that suspended.
func (d *Decoder) Data(chunk []byte) (ion.Event, error) {
	return d.Step(Request{Kind: RequestData, Data: chunk})
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.buf.Position()
}

// Buffered returns the number of bytes received but not yet consumed.
func (d *Decoder) Buffered() int {
	return d.buf.Len()
}

// Depth returns the nesting depth of the next value.
func (d *Decoder) Depth() int {
	return d.stack.depth()
}

// Err returns the error that invalidated the decoder, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Step performs one request and returns exactly one event. A malformed input
// or protocol violation invalidates the decoder: the same error is returned
// for every later request.
func (d *Decoder) Step(req Request) (ion.Event, error) {
	if d.err != nil {
		return ion.Event{}, d.err
	}

	switch req.Kind {
	case RequestData:
		if d.started && !d.needData {
			return d.fail(d.protocolError("data supplied while the decoder was not waiting for input"))
		}
		d.started = true
		d.needData = false
		d.buf = d.buf.Extend(req.Data)
		return d.advance()

	case RequestNext:
		if d.needData {
			return d.fail(d.protocolError("next requested while the decoder is waiting for data"))
		}
		d.started = true
		return d.advance()

	case RequestSkip:
		if d.needData {
			return d.fail(d.protocolError("skip requested while the decoder is waiting for data"))
		}
		top := d.stack.top()
		if !top.bounded() {
			return d.fail(d.protocolError("skip requested outside a container"))
		}
		d.started = true
		d.skip = top.limit - d.buf.Position()
		return d.advance()
	}

	return d.fail(d.protocolError("unknown request kind %d", req.Kind))
}

// advance runs the machine until it can return an event. It only loops to
// discard padding.
func (d *Decoder) advance() (ion.Event, error) {
	for {
		if d.skip > 0 {
			n, next := d.buf.Skip(int(min(d.skip, math.MaxInt32)))
			d.buf = next
			d.skip -= int64(n)
			if d.skip > 0 {
				return d.suspend(ion.EventIncomplete)
			}
		}

		top := d.stack.top()
		if top.bounded() {
			pos := d.buf.Position()
			if pos == top.limit {
				d.stack.pop()
				d.log.Debug("container end",
					zap.Stringer("type", top.ionType),
					zap.Int("depth", top.depth-1))
				return ion.Event{Type: ion.EventContainerEnd, IonType: top.ionType, Depth: top.depth - 1}, nil
			}
			if pos > top.limit {
				return d.fail(errors.New(errors.PhaseRead, errors.KindMalformed).
					Offset(pos).
					Expected("container end at %d", top.limit).
					Detail("declared container length violated").
					Build())
			}
		}

		c := &cursor{buf: d.buf, limit: top.limit}
		st, err := d.decodeValue(c, top)
		if err != nil {
			if errors.IsIncomplete(err) {
				if !top.bounded() && d.buf.Len() == 0 {
					return d.suspend(ion.EventStreamEnd)
				}
				return d.suspend(ion.EventIncomplete)
			}
			return d.fail(err)
		}

		d.buf = c.buf
		switch st.kind {
		case stepPadding:
			d.skip = st.pad
			continue
		case stepIVM:
			d.sawIVM = true
		case stepContainer:
			f := d.stack.push(st.event.IonType, st.limit)
			d.log.Debug("container start",
				zap.Stringer("type", f.ionType),
				zap.Int("depth", f.depth-1),
				zap.Int64("limit", f.limit))
		}

		if d.eager && st.event.IsDeferred() {
			ev, err := st.event.Materialize()
			if err != nil {
				return d.fail(err)
			}
			st.event = ev
		}
		return st.event, nil
	}
}

func (d *Decoder) protocolError(detail string, args ...any) error {
	return errors.New(errors.PhaseProtocol, errors.KindProtocol).
		Offset(d.buf.Position()).
		Detail(detail, args...).
		Build()
}

func (d *Decoder) suspend(t ion.EventType) (ion.Event, error) {
	d.needData = true
	d.log.Debug("decoder suspended",
		zap.Stringer("signal", t),
		zap.Int64("offset", d.buf.Position()),
		zap.Int("buffered", d.buf.Len()),
		zap.Int64("pending_skip", d.skip))
	ev := ion.IncompleteEvent
	if t == ion.EventStreamEnd {
		ev = ion.StreamEndEvent
	}
	ev.Depth = d.stack.depth()
	return ev, nil
}

func (d *Decoder) fail(err error) (ion.Event, error) {
	d.err = err
	d.log.Warn("decoder invalidated",
		zap.Int64("offset", d.buf.Position()),
		zap.Error(err))
	return ion.Event{}, err
}

func (d *Decoder) resolve(tok ion.SymbolToken) ion.SymbolToken {
	if d.resolver == nil {
		return tok
	}
	return d.resolver.Resolve(tok)
}

type stepKind uint8

const (
	stepValue stepKind = iota
	stepContainer
	stepPadding
	stepIVM
)

// step is the outcome of one successful decode attempt.
type step struct {
	event ion.Event
	limit int64 // stepContainer: end offset of the new frame
	pad   int64 // stepPadding: bytes to discard
	kind  stepKind
}

// decodeValue decodes the field name (inside structs) and the value that
// follows it, without touching decoder state.
func (d *Decoder) decodeValue(c *cursor, top frame) (step, error) {
	var field *ion.SymbolToken
	if top.mode == modeStruct {
		sid, err := c.readVarUInt()
		if err != nil {
			return step{}, err
		}
		tok := d.resolve(ion.NewSymbolToken(sid))
		field = &tok
	}

	at := c.pos()
	octet, err := c.readByte()
	if err != nil {
		return step{}, err
	}
	if !d.sawIVM && !top.bounded() && octet != ivmStart {
		return step{}, errors.New(errors.PhaseRead, errors.KindMalformed).
			Offset(at).
			Expected("version marker 0x%02X", ivmStart).
			Actual("0x%02X", octet).
			Detail("stream does not start with a version marker").
			Build()
	}

	return d.decodeTyped(c, top, value{octet: octet, at: at, field: field})
}

// value carries what is known about the value being decoded.
type value struct {
	field       *ion.SymbolToken
	annotations []ion.SymbolToken
	at          int64 // offset of the type octet
	wrapperEnd  int64 // end of the enclosing annotation wrapper, if annotated
	octet       byte
}

func (v value) annotated() bool {
	return v.annotations != nil
}

func (d *Decoder) decodeTyped(c *cursor, top frame, v value) (step, error) {
	h := dispatchTable[v.octet]
	ev := ion.Event{
		Type:        ion.EventScalar,
		IonType:     h.ionType,
		Depth:       top.depth,
		FieldName:   v.field,
		Annotations: v.annotations,
	}

	switch h.kind {
	case handlerNull:
		return step{event: ev}, nil

	case handlerStatic:
		ev.Value = staticValue(h)
		return step{event: ev}, nil

	case handlerScalar:
		length, err := c.readLength(h)
		if err != nil {
			return step{}, err
		}
		if h.codec == codecFloat && length != 4 && length != 8 {
			return step{}, errors.New(errors.PhaseRead, errors.KindMalformed).
				Offset(v.at).
				Expected("4 or 8 bytes").
				Actual("%d bytes", length).
				Detail("unsupported float length").
				Build()
		}
		start := c.pos()
		data, err := c.readSlice(length)
		if err != nil {
			return step{}, err
		}
		ev.Value = Thunk{data: data, offset: start, codec: h.codec, resolver: d.resolver}
		return step{event: ev}, nil

	case handlerContainer:
		return d.containerStart(c, top, v, h, ev)

	case handlerAnnotation:
		return d.annotationWrapper(c, top, v, h)

	case handlerPadding:
		if v.field != nil && v.field.SID != 0 {
			return step{}, errors.Malformed(errors.PhaseRead, v.at,
				"padding with non-zero field id %d", v.field.SID)
		}
		length, err := c.readLength(h)
		if err != nil {
			return step{}, err
		}
		if err := c.ensure(length); err != nil {
			return step{}, err
		}
		return step{kind: stepPadding, pad: length}, nil

	case handlerIVM:
		if top.depth != 0 {
			return step{}, errors.Malformed(errors.PhaseRead, v.at,
				"version marker at depth %d", top.depth)
		}
		tail, err := c.readSlice(int64(len(ivmTail)))
		if err != nil {
			return step{}, err
		}
		if [3]byte(tail) != ivmTail {
			return step{}, errors.New(errors.PhaseRead, errors.KindMalformed).
				Offset(v.at).
				Expected("% X", ivmTail[:]).
				Actual("% X", tail).
				Detail("unsupported version marker").
				Build()
		}
		return step{kind: stepIVM, event: ion.Event{Type: ion.EventVersionMarker}}, nil
	}

	return step{}, errors.New(errors.PhaseRead, errors.KindMalformed).
		Offset(v.at).
		Value(v.octet).
		Detail("invalid type octet 0x%02X", v.octet).
		Build()
}

func (d *Decoder) containerStart(c *cursor, top frame, v value, h handler, ev ion.Event) (step, error) {
	lengthAt := c.pos()
	length, err := c.readLength(h)
	if err != nil {
		return step{}, err
	}
	if h.ordered && length < 2 {
		return step{}, errors.New(errors.PhaseRead, errors.KindMalformed).
			Offset(lengthAt).
			Expected("at least 2 bytes").
			Actual("%d bytes", length).
			Detail("ordered struct must hold at least one field").
			Build()
	}
	if err := c.ensure(length); err != nil {
		return step{}, err
	}
	limit := c.pos() + length
	if v.annotated() && limit != v.wrapperEnd {
		return step{}, annotationLengthError(v, limit)
	}
	if d.maxDepth > 0 && top.depth+1 > d.maxDepth {
		return step{}, errors.Malformed(errors.PhaseRead, v.at,
			"container nesting exceeds maximum depth %d", d.maxDepth)
	}
	ev.Type = ion.EventContainerStart
	return step{kind: stepContainer, event: ev, limit: limit}, nil
}

// annotationWrapper decodes the annotation ids of a wrapper and the single
// value it wraps. Wrappers cannot nest and cannot wrap padding.
func (d *Decoder) annotationWrapper(c *cursor, top frame, v value, h handler) (step, error) {
	length, err := c.readLength(h)
	if err != nil {
		return step{}, err
	}
	if err := c.ensure(length); err != nil {
		return step{}, err
	}
	parentLimit := c.limit
	end := c.pos() + length
	c.limit = end

	annAt := c.pos()
	annLength, err := c.readVarUInt()
	if err != nil {
		return step{}, err
	}
	if annLength < 1 {
		return step{}, errors.Malformed(errors.PhaseRead, annAt,
			"annotation wrapper must hold at least one annotation")
	}
	blockAt := c.pos()
	if err := c.ensure(int64(annLength)); err != nil {
		return step{}, err
	}
	block, err := c.readSlice(int64(annLength))
	if err != nil {
		return step{}, err
	}
	sids, err := parseSIDs(block, blockAt)
	if err != nil {
		return step{}, err
	}
	if c.pos() >= end {
		return step{}, errors.Malformed(errors.PhaseRead, c.pos(),
			"annotation wrapper has no room for the wrapped value")
	}

	inner := value{
		field:       v.field,
		annotations: make([]ion.SymbolToken, len(sids)),
		wrapperEnd:  end,
		at:          c.pos(),
	}
	for i, sid := range sids {
		inner.annotations[i] = d.resolve(ion.NewSymbolToken(sid))
	}
	inner.octet, err = c.readByte()
	if err != nil {
		return step{}, err
	}
	switch dispatchTable[inner.octet].kind {
	case handlerIVM:
		return step{}, errors.Malformed(errors.PhaseRead, inner.at,
			"annotation wrapper cannot wrap a version marker")
	case handlerAnnotation:
		return step{}, errors.Malformed(errors.PhaseRead, inner.at,
			"annotation wrapper cannot wrap another annotation wrapper")
	case handlerPadding:
		return step{}, errors.Malformed(errors.PhaseRead, inner.at,
			"padding cannot be annotated")
	}

	st, err := d.decodeTyped(c, top, inner)
	if err != nil {
		return step{}, err
	}
	if st.kind != stepContainer && c.pos() != end {
		return step{}, annotationLengthError(inner, c.pos())
	}
	c.limit = parentLimit
	return st, nil
}

func annotationLengthError(v value, actualEnd int64) error {
	return errors.New(errors.PhaseRead, errors.KindMalformed).
		Offset(v.at).
		Expected("wrapped value ending at %d", v.wrapperEnd).
		Actual("value ending at %d", actualEnd).
		Detail("annotation wrapper length mismatch").
		Build()
}
