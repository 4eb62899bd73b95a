package binary

import "github.com/wippyai/ion-binary/ion"

// Type ids carried in the high nibble of a type octet.
const (
	tidNull       byte = 0x0 // null or padding
	tidBool       byte = 0x1
	tidPosInt     byte = 0x2
	tidNegInt     byte = 0x3
	tidFloat      byte = 0x4
	tidDecimal    byte = 0x5
	tidTimestamp  byte = 0x6
	tidSymbol     byte = 0x7
	tidString     byte = 0x8
	tidClob       byte = 0x9
	tidBlob       byte = 0xA
	tidList       byte = 0xB
	tidSexp       byte = 0xC
	tidStruct     byte = 0xD
	tidAnnotation byte = 0xE // no logical type of its own
)

// Length nibble values with special meaning.
const (
	lnMaxInline   byte = 0xD // largest length stored directly in the nibble
	lnLengthField byte = 0xE // a VarUInt length follows the type octet
	lnNull        byte = 0xF
	lnOrdered     byte = 0x1 // with tidStruct: fields sorted by id, explicit length follows
)

// Version marker: a leading octet and a three-octet tail for version 1.0.
const ivmStart byte = 0xE0

var ivmTail = [3]byte{0x01, 0x00, 0xEA}

// Bit layouts of VarUInt, VarInt and signed-magnitude Int fields.
const (
	varEndMask       byte = 0x80
	varValueMask     byte = 0x7F
	varValueBits          = 7
	varSignMask      byte = 0x40
	varSignValueMask byte = 0x3F
	intSignMask      byte = 0x80
	intSignValueMask byte = 0x7F
)

// tidTypes maps a type id to the logical type it encodes.
var tidTypes = [16]ion.Type{
	tidNull:       ion.TypeNull,
	tidBool:       ion.TypeBool,
	tidPosInt:     ion.TypeInt,
	tidNegInt:     ion.TypeInt,
	tidFloat:      ion.TypeFloat,
	tidDecimal:    ion.TypeDecimal,
	tidTimestamp:  ion.TypeTimestamp,
	tidSymbol:     ion.TypeSymbol,
	tidString:     ion.TypeString,
	tidClob:       ion.TypeClob,
	tidBlob:       ion.TypeBlob,
	tidList:       ion.TypeList,
	tidSexp:       ion.TypeSexp,
	tidStruct:     ion.TypeStruct,
	tidAnnotation: ion.TypeNone,
}

func typeOctet(tid, ln byte) byte {
	return tid<<4 | ln
}
