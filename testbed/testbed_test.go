// Package testbed holds cross-package property tests that drive the decoder
// through the full request protocol.
package testbed

import (
	"fmt"
	"strings"

	"github.com/wippyai/ion-binary/binary"
	"github.com/wippyai/ion-binary/ion"
)

var ivm = []byte{0xE0, 0x01, 0x00, 0xEA}

func stream(body ...byte) []byte {
	return append(append([]byte{}, ivm...), body...)
}

// encode wraps body in a type octet for tid, using an inline length nibble or
// a VarUInt length field.
func encode(tid byte, body ...byte) []byte {
	if len(body) < 0xE {
		return append([]byte{tid<<4 | byte(len(body))}, body...)
	}
	out := append([]byte{tid<<4 | 0xE}, varUInt(uint64(len(body)))...)
	return append(out, body...)
}

func varUInt(v uint64) []byte {
	out := []byte{byte(v&0x7F) | 0x80}
	for v >>= 7; v > 0; v >>= 7 {
		out = append([]byte{byte(v & 0x7F)}, out...)
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// corpus holds well-formed payloads covering every value kind.
var corpus = map[string][]byte{
	"mixed": stream(
		0xD9, 0x84, 0xE4, 0x82, 0x85, 0x86, 0x10, 0x8A, 0x71, 0x07,
		0xB4, 0xB2, 0x21, 0x01, 0x11,
		0x68, 0x80, 0x0F, 0xD0, 0x81, 0x81, 0x8C, 0x9E, 0x85,
		0x52, 0xC1, 0x0F,
		0x03, 0xFF, 0xFF, 0xFF,
		0x8E, 0x82, 'h', 'i',
		0xE5, 0x81, 0x84, 0xB2, 0x21, 0x01,
		0x29, 0x01, 0, 0, 0, 0, 0, 0, 0, 0,
		0xE0, 0x01, 0x00, 0xEA,
		0xC2, 0x71, 0x04,
		0x0F, 0xA2, 0x01, 0x02,
		0xD1, 0x82, 0x84, 0x20,
		0x44, 0x3F, 0x80, 0x00, 0x00,
	),
	"long strings": concat(ivm, encode(0xB, concat(
		encode(0x8, []byte(strings.Repeat("a", 40))...),
		encode(0x8, []byte(strings.Repeat("b", 200))...),
		encode(0xA, make([]byte, 300)...),
	)...)),
	"deep": concat(ivm, encode(0xB, encode(0xC, encode(0xD, append([]byte{0x84}, encode(0xB, 0x11)...)...)...)...)),
	"struct padding": stream(0xD6, 0x80, 0x01, 0xFF, 0x84, 0x21, 0x05),
}

// malformed holds payloads that must fail identically however they are chunked.
var malformed = map[string][]byte{
	"no version marker":   {0x11},
	"child overruns list": stream(0xB3, 0x21, 0x01, 0x22, 0x01, 0x02),
	"annotation mismatch": stream(0x11, 0xE5, 0x81, 0x84, 0x21, 0x01, 0x10),
	"padding field id":    stream(0xD3, 0x81, 0x01, 0xFF),
	"nested annotation":   stream(0xE6, 0x81, 0x84, 0xE3, 0x81, 0x84, 0x10),
	"ordered struct":      stream(0xD1, 0x81, 0x84),
}

// canonical renders an event with its value forced so that thunks compare by
// content.
func canonical(ev ion.Event) string {
	if !ev.IsDeferred() {
		return ev.String()
	}
	v, err := ev.Resolve()
	if err != nil {
		return fmt.Sprintf("%s forced error=%v", ev, err)
	}
	return fmt.Sprintf("%s forced=%v", ev, v)
}

// ChunkStream hands out a payload in pieces.
type ChunkStream struct {
	chunks [][]byte
	pos    int
}

func NewChunkStream(chunks ...[]byte) *ChunkStream {
	return &ChunkStream{chunks: chunks}
}

// Split cuts data at the given offsets.
func Split(data []byte, cuts ...int) *ChunkStream {
	s := &ChunkStream{}
	prev := 0
	for _, c := range cuts {
		s.chunks = append(s.chunks, data[prev:c])
		prev = c
	}
	s.chunks = append(s.chunks, data[prev:])
	return s
}

func (s *ChunkStream) Next() ([]byte, bool) {
	if s.pos >= len(s.chunks) {
		return nil, false
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, true
}

// run drives a decoder over the stream until it ends. skip decides, for each
// container start, whether to skip the container instead of descending.
func run(s *ChunkStream, skip func(ion.Event) bool) ([]string, error) {
	d := binary.NewDecoder()
	var out []string
	req := binary.Request{Kind: binary.RequestNext}
	for {
		ev, err := d.Step(req)
		if err != nil {
			return out, err
		}
		if ev.Type.IsStreamSignal() {
			chunk, ok := s.Next()
			if !ok {
				if ev.Type == ion.EventIncomplete {
					return out, fmt.Errorf("truncated at offset %d", d.Offset())
				}
				return out, nil
			}
			req = binary.Request{Kind: binary.RequestData, Data: chunk}
			continue
		}
		out = append(out, canonical(ev))
		req = binary.Request{Kind: binary.RequestNext}
		if ev.Type == ion.EventContainerStart && skip != nil && skip(ev) {
			req.Kind = binary.RequestSkip
		}
	}
}
