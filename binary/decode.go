package binary

import (
	"github.com/wippyai/ion-binary/errors"
	"github.com/wippyai/ion-binary/ion"
)

// Decode decodes a complete in-memory stream and returns its events, without
// the final stream-end signal. Deferred scalars are returned as Thunks.
func Decode(data []byte) ([]ion.Event, error) {
	return DecodeWithConfig(data, nil)
}

// DecodeWithConfig is Decode with custom configuration.
func DecodeWithConfig(data []byte, cfg *Config) ([]ion.Event, error) {
	d := NewDecoderWithConfig(cfg)
	ev, err := d.Data(data)
	var events []ion.Event
	for {
		if err != nil {
			return events, err
		}
		switch ev.Type {
		case ion.EventStreamEnd:
			return events, nil
		case ion.EventIncomplete:
			return events, errors.New(errors.PhaseRead, errors.KindIncomplete).
				Offset(d.Offset()).
				Detail("stream ends inside a value (%d bytes buffered)", d.Buffered()).
				Build()
		}
		events = append(events, ev)
		ev, err = d.Next()
	}
}
