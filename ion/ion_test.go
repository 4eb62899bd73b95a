package ion

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
)

type fakeDeferred struct {
	v     any
	err   error
	calls *int
}

func (f fakeDeferred) Force() (any, error) {
	*f.calls++
	return f.v, f.err
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeNone, "none"},
		{TypeNull, "null"},
		{TypeDecimal, "decimal"},
		{TypeStruct, "struct"},
		{Type(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTypeIsContainer(t *testing.T) {
	for _, typ := range []Type{TypeList, TypeSexp, TypeStruct} {
		if !typ.IsContainer() {
			t.Errorf("%v should be a container", typ)
		}
	}
	for _, typ := range []Type{TypeNull, TypeInt, TypeString, TypeBlob} {
		if typ.IsContainer() {
			t.Errorf("%v should not be a container", typ)
		}
	}
}

func TestEventTypeIsStreamSignal(t *testing.T) {
	if !EventIncomplete.IsStreamSignal() || !EventStreamEnd.IsStreamSignal() {
		t.Error("incomplete and stream end are stream signals")
	}
	if EventScalar.IsStreamSignal() || EventContainerEnd.IsStreamSignal() {
		t.Error("value events are not stream signals")
	}
	if EventVersionMarker.String() != "version_marker" {
		t.Errorf("String() = %q", EventVersionMarker.String())
	}
}

func TestSymbolTable_Resolve(t *testing.T) {
	tests := []struct {
		sid      uint64
		wantText string
		resolved bool
	}{
		{0, "", false},
		{1, "$ion", true},
		{4, "name", true},
		{9, "$ion_shared_symbol_table", true},
		{10, "", false},
	}
	for _, tt := range tests {
		tok := SystemSymbols.Resolve(NewSymbolToken(tt.sid))
		if tok.HasText() != tt.resolved {
			t.Errorf("sid %d: HasText = %v, want %v", tt.sid, tok.HasText(), tt.resolved)
			continue
		}
		if tt.resolved && *tok.Text != tt.wantText {
			t.Errorf("sid %d: text = %q, want %q", tt.sid, *tok.Text, tt.wantText)
		}
		if tok.SID != tt.sid {
			t.Errorf("sid changed: %d -> %d", tt.sid, tok.SID)
		}
	}
}

func TestSymbolTable_KeepsExistingText(t *testing.T) {
	text := "custom"
	tok := SystemSymbols.Resolve(SymbolToken{SID: 4, Text: &text})
	if *tok.Text != "custom" {
		t.Errorf("text = %q, want custom", *tok.Text)
	}
}

func TestSymbolToken_EqualAndString(t *testing.T) {
	a := NewSymbolToken(4)
	b := SystemSymbols.Resolve(NewSymbolToken(4))
	if a.Equal(b) {
		t.Error("resolved and unresolved tokens should differ")
	}
	if !b.Equal(SystemSymbols.Resolve(NewSymbolToken(4))) {
		t.Error("equally resolved tokens should be equal")
	}
	if a.String() != "$4" {
		t.Errorf("String() = %q, want $4", a.String())
	}
	if b.String() != "name" {
		t.Errorf("String() = %q, want name", b.String())
	}
}

func TestEvent_Resolve(t *testing.T) {
	calls := 0
	ev := Event{Type: EventScalar, IonType: TypeInt, Value: fakeDeferred{v: int64(7), calls: &calls}}

	if !ev.IsDeferred() {
		t.Fatal("event should be deferred")
	}
	if ev.IsNull() {
		t.Fatal("deferred event is not null")
	}
	for i := 0; i < 2; i++ {
		v, err := ev.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if v != int64(7) {
			t.Errorf("Resolve = %v, want 7", v)
		}
	}
	if calls != 2 {
		t.Errorf("Force called %d times, want 2", calls)
	}

	m, err := ev.Materialize()
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if m.IsDeferred() || m.Value != int64(7) {
		t.Errorf("Materialize value = %v", m.Value)
	}
	if !ev.IsDeferred() {
		t.Error("Materialize must not modify the receiver")
	}
}

func TestEvent_ResolveError(t *testing.T) {
	calls := 0
	want := errors.New("bad bytes")
	ev := Event{Type: EventScalar, IonType: TypeString, Value: fakeDeferred{err: want, calls: &calls}}
	if _, err := ev.Resolve(); !errors.Is(err, want) {
		t.Errorf("Resolve err = %v, want %v", err, want)
	}
	if _, err := ev.Materialize(); !errors.Is(err, want) {
		t.Errorf("Materialize err = %v, want %v", err, want)
	}
}

func TestEvent_String(t *testing.T) {
	field := NewSymbolToken(10)
	ev := Event{
		Type:        EventScalar,
		IonType:     TypeBool,
		Value:       true,
		Depth:       1,
		FieldName:   &field,
		Annotations: []SymbolToken{NewSymbolToken(4), NewSymbolToken(7)},
	}
	s := ev.String()
	for _, want := range []string{"scalar", "bool", "depth=1", "field=$10", "annotations=$4,$7", "value=true"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}

	null := Event{Type: EventScalar, IonType: TypeInt}
	if !null.IsNull() || !strings.Contains(null.String(), "value=null") {
		t.Errorf("null String() = %q", null.String())
	}
	if StreamEndEvent.IsNull() {
		t.Error("stream end is not a null value")
	}
}

func TestTimestamp_String(t *testing.T) {
	minus7 := time.FixedZone("", -7*3600)
	frac, _, err := apd.NewFromString("0.001")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		ts   Timestamp
		want string
	}{
		{
			name: "year",
			ts:   Timestamp{Time: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), Precision: PrecisionYear},
			want: "2016T",
		},
		{
			name: "month",
			ts:   Timestamp{Time: time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC), Precision: PrecisionMonth},
			want: "2016-02T",
		},
		{
			name: "day",
			ts:   Timestamp{Time: time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC), Precision: PrecisionDay},
			want: "2016-02-01",
		},
		{
			name: "minute unknown offset",
			ts:   Timestamp{Time: time.Date(2016, 2, 1, 12, 30, 0, 0, time.UTC), Precision: PrecisionMinute},
			want: "2016-02-01T12:30-00:00",
		},
		{
			name: "second utc",
			ts: Timestamp{
				Time:        time.Date(2016, 2, 1, 12, 30, 5, 0, time.UTC),
				Precision:   PrecisionSecond,
				OffsetKnown: true,
			},
			want: "2016-02-01T12:30:05Z",
		},
		{
			name: "fraction with offset",
			ts: Timestamp{
				Time:        time.Date(2016, 2, 2, 0, 0, 30, 1000000, minus7),
				Precision:   PrecisionSecond,
				OffsetKnown: true,
				Fraction:    frac,
			},
			want: "2016-02-02T00:00:30.001-07:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimestamp_Equal(t *testing.T) {
	utc := time.Date(2016, 2, 2, 7, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("", -7*3600))

	a := Timestamp{Time: utc, Precision: PrecisionMinute, OffsetKnown: true}
	b := Timestamp{Time: local, Precision: PrecisionMinute, OffsetKnown: true}
	if a.Equal(b) {
		t.Error("same instant with different offsets should differ")
	}
	if !b.Equal(Timestamp{Time: local, Precision: PrecisionMinute, OffsetKnown: true}) {
		t.Error("identical timestamps should be equal")
	}
	if a.Equal(Timestamp{Time: utc, Precision: PrecisionSecond, OffsetKnown: true}) {
		t.Error("different precision should differ")
	}
	if b.OffsetMinutes() != -420 {
		t.Errorf("OffsetMinutes = %d, want -420", b.OffsetMinutes())
	}
	if (Timestamp{Time: utc}).OffsetMinutes() != 0 {
		t.Error("unknown offset reports 0 minutes")
	}
}

func TestTimestamp_FractionDigits(t *testing.T) {
	frac, _, err := apd.NewFromString("0.000100")
	if err != nil {
		t.Fatal(err)
	}
	ts := Timestamp{Fraction: frac}
	if got := ts.FractionDigits(); got != 6 {
		t.Errorf("FractionDigits = %d, want 6", got)
	}
	if got := (Timestamp{}).FractionDigits(); got != 0 {
		t.Errorf("FractionDigits without fraction = %d, want 0", got)
	}
}
