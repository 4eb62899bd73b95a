package binary

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/wippyai/ion-binary/ion"
)

// handlerKind is the closed set of things a type octet can introduce.
type handlerKind uint8

const (
	handlerInvalid handlerKind = iota
	handlerNull
	handlerStatic     // value fully determined by the octet
	handlerScalar     // length-prefixed scalar, deferred through a codec
	handlerContainer  // list, sexp or struct start
	handlerAnnotation // annotation wrapper around exactly one value
	handlerPadding    // bytes to discard
	handlerIVM        // version marker
)

var handlerKindNames = [...]string{
	handlerInvalid:    "invalid",
	handlerNull:       "null",
	handlerStatic:     "static",
	handlerScalar:     "scalar",
	handlerContainer:  "container",
	handlerAnnotation: "annotation",
	handlerPadding:    "padding",
	handlerIVM:        "ivm",
}

func (k handlerKind) String() string {
	if int(k) < len(handlerKindNames) {
		return handlerKindNames[k]
	}
	return "unknown"
}

// handler describes how to decode the value introduced by one type octet.
type handler struct {
	value   any // handlerStatic only
	kind    handlerKind
	ionType ion.Type
	codec   codec // handlerScalar only
	length  byte  // inline length nibble, or lnLengthField
	ordered bool  // ordered struct: explicit length of at least two
}

// explicitLength reports whether a VarUInt length follows the type octet.
func (h handler) explicitLength() bool {
	return h.length == lnLengthField || h.ordered
}

// dispatchTable is indexed by type octet. It is built once and never modified.
var dispatchTable = buildDispatchTable()

type staticScalar struct {
	value   any
	octet   byte
	ionType ion.Type
}

var staticScalars = []staticScalar{
	{octet: 0x10, ionType: ion.TypeBool, value: false},
	{octet: 0x11, ionType: ion.TypeBool, value: true},
	{octet: 0x20, ionType: ion.TypeInt, value: int64(0)},
	{octet: 0x40, ionType: ion.TypeFloat, value: float64(0)},
	{octet: 0x50, ionType: ion.TypeDecimal, value: nil}, // fresh zero per event, see staticValue
	{octet: 0x70, ionType: ion.TypeSymbol, value: ion.NewSymbolToken(0)},
	{octet: 0x80, ionType: ion.TypeString, value: ""},
	{octet: 0x90, ionType: ion.TypeClob, value: []byte{}},
	{octet: 0xA0, ionType: ion.TypeBlob, value: []byte{}},
}

// lengthScalars binds each scalar type id to its codec and valid nibbles.
var lengthScalars = []struct {
	tid   byte
	codec codec
	lns   []byte
}{
	{tidPosInt, codecPosInt, nibbleRange(1, lnLengthField)},
	{tidNegInt, codecNegInt, nibbleRange(1, lnLengthField)},
	{tidFloat, codecFloat, []byte{4, 8, lnLengthField}},
	{tidDecimal, codecDecimal, nibbleRange(1, lnLengthField)},
	{tidTimestamp, codecTimestamp, nibbleRange(1, lnLengthField)},
	{tidSymbol, codecSymbol, nibbleRange(1, lnLengthField)},
	{tidString, codecString, nibbleRange(1, lnLengthField)},
	{tidClob, codecLob, nibbleRange(1, lnLengthField)},
	{tidBlob, codecLob, nibbleRange(1, lnLengthField)},
}

func nibbleRange(lo, hi byte) []byte {
	lns := make([]byte, 0, hi-lo+1)
	for ln := lo; ln <= hi; ln++ {
		lns = append(lns, ln)
	}
	return lns
}

func buildDispatchTable() [256]handler {
	var table [256]handler // zero value is handlerInvalid

	for tid := tidNull; tid <= tidStruct; tid++ {
		table[typeOctet(tid, lnNull)] = handler{kind: handlerNull, ionType: tidTypes[tid]}
	}

	for _, s := range staticScalars {
		table[s.octet] = handler{kind: handlerStatic, ionType: s.ionType, value: s.value}
	}

	for _, ls := range lengthScalars {
		for _, ln := range ls.lns {
			table[typeOctet(ls.tid, ln)] = handler{
				kind:    handlerScalar,
				ionType: tidTypes[ls.tid],
				codec:   ls.codec,
				length:  ln,
			}
		}
	}

	for _, tid := range []byte{tidList, tidSexp, tidStruct} {
		for ln := byte(0); ln <= lnLengthField; ln++ {
			h := handler{kind: handlerContainer, ionType: tidTypes[tid], length: ln}
			if tid == tidStruct && ln == lnOrdered {
				h.ordered = true
			}
			table[typeOctet(tid, ln)] = h
		}
	}

	for ln := byte(3); ln <= lnLengthField; ln++ {
		table[typeOctet(tidAnnotation, ln)] = handler{kind: handlerAnnotation, length: ln}
	}

	for ln := byte(0); ln <= lnLengthField; ln++ {
		table[typeOctet(tidNull, ln)] = handler{kind: handlerPadding, length: ln}
	}

	table[ivmStart] = handler{kind: handlerIVM}

	return table
}

// staticValue returns the value for a static handler. Mutable values are
// allocated per call so events never share them.
func staticValue(h handler) any {
	if h.ionType == ion.TypeDecimal {
		return new(apd.Decimal)
	}
	return h.value
}
