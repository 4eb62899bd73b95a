// Package ionbinary provides a resumable streaming decoder for the Ion binary
// format.
//
// The decoder accepts input in arbitrary chunks, including chunks that end in
// the middle of a value, and turns it into a depth-first sequence of events
// without ever buffering more than the value currently being decoded.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	ionbinary/                Root package with the chunked Buffer contract
//	├── ion/                  Data model: types, events, symbol tokens, timestamps
//	├── binary/               Decoder: primitive codecs, dispatch table, state machine
//	│   └── internal/buffer/  Persistent chunk-queue Buffer implementation
//	├── errors/               Structured error types for debugging
//	├── examples/basic/       Chunked decoding walkthrough
//	└── testbed/              Cross-package property tests
//
// # Quick Start
//
// Drive the decoder with Next, Skip and Data requests:
//
//	dec := binary.NewDecoder()
//	ev, err := dec.Data(chunk)
//	for err == nil {
//	    switch {
//	    case ev.Type.IsStreamSignal():
//	        chunk = readMore() // caller-owned I/O
//	        ev, err = dec.Data(chunk)
//	        continue
//	    case ev.Type == ion.EventScalar:
//	        v, _ := ev.Resolve()
//	        fmt.Println(v)
//	    }
//	    ev, err = dec.Next()
//	}
//
// After an incomplete or stream-end event the only legal request is Data; any
// other request is a protocol violation that invalidates the decoder, as does
// malformed input.
//
// # Concurrency
//
// A Decoder is not safe for concurrent use. Independent decoders share no
// mutable state and may run on separate goroutines.
package ionbinary
