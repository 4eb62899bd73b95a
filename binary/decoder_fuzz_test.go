package binary_test

import (
	"testing"

	"github.com/wippyai/ion-binary/binary"
	"github.com/wippyai/ion-binary/errors"
	"github.com/wippyai/ion-binary/ion"
)

// decodeChunked feeds data in pieces of size n and collects event strings.
func decodeChunked(data []byte, n int) ([]string, error) {
	d := binary.NewDecoder()
	var out []string
	ev, err := d.Next()
	for err == nil {
		if ev.Type.IsStreamSignal() {
			if len(data) == 0 {
				if ev.Type == ion.EventIncomplete {
					return out, errors.New(errors.PhaseRead, errors.KindIncomplete).Offset(d.Offset()).Build()
				}
				return out, nil
			}
			k := min(n, len(data))
			ev, err = d.Data(data[:k])
			data = data[k:]
			continue
		}
		out = append(out, ev.String())
		ev, err = d.Next()
	}
	return out, err
}

func FuzzDecode(f *testing.F) {
	f.Add(stream(0x11, 0x10), uint8(1))
	f.Add(stream(0xB4, 0xB2, 0x21, 0x01, 0x11), uint8(3))
	f.Add(stream(0xD9, 0x84, 0xE4, 0x82, 0x85, 0x86, 0x10, 0x8A, 0x71, 0x07), uint8(2))
	f.Add(stream(0x68, 0x80, 0x0F, 0xD0, 0x81, 0x81, 0x8C, 0x9E, 0x85), uint8(5))
	f.Add(stream(0x52, 0xC1, 0x0F), uint8(1))
	f.Add(stream(0x6E, 0x8E, 0x80, 0x0F, 0xD0, 0x81, 0x81, 0x80, 0x80, 0x80, 0x47, 0x7F, 0x7F, 0x7F, 0xFF, 0x01), uint8(4))
	f.Add(stream(0x5E, 0x86, 0x47, 0x7F, 0x7F, 0x7F, 0xFF, 0x01), uint8(2))
	f.Add([]byte{0xE0, 0x01}, uint8(1))
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF}, uint8(0))

	f.Fuzz(func(t *testing.T, data []byte, chunk uint8) {
		events, err := binary.Decode(data)
		if err != nil && errors.KindOf(err) == "" {
			t.Fatalf("unstructured error: %v", err)
		}
		depth := 0
		for _, ev := range events {
			switch ev.Type {
			case ion.EventContainerStart:
				depth++
			case ion.EventContainerEnd:
				depth--
			case ion.EventScalar:
				// forcing must not panic; errors are fine
				_, _ = ev.Resolve()
			}
			if depth < 0 {
				t.Fatalf("container end without start in %v", events)
			}
		}
		if err == nil && depth != 0 {
			t.Fatalf("stream ended with %d open containers", depth)
		}

		chunked, cerr := decodeChunked(data, int(chunk%16)+1)
		if len(chunked) != len(events) {
			t.Fatalf("chunked decode produced %d events, whole decode %d", len(chunked), len(events))
		}
		for i, ev := range events {
			if chunked[i] != ev.String() {
				t.Fatalf("event %d: chunked %s, whole %s", i, chunked[i], ev)
			}
		}
		if errors.KindOf(cerr) != errors.KindOf(err) {
			t.Fatalf("chunked error %v, whole error %v", cerr, err)
		}
	})
}
