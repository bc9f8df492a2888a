package engine

import (
	"errors"
	"testing"
)

func TestDecode_SongChanged(t *testing.T) {
	tests := []struct {
		name string
		ctx  any
	}{
		{"value", TrackChange{From: 1, To: 2}},
		{"pointer", &TrackChange{From: 1, To: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode(RawEvent{Kind: EventSongChanged, Context: tt.ctx, P1: 3})
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			tc, ok := ev.Payload.(TrackChange)
			if !ok {
				t.Fatalf("Payload = %T, want TrackChange", ev.Payload)
			}
			if tc.To != 2 || tc.From != 1 {
				t.Errorf("TrackChange = %+v, want From=1 To=2", tc)
			}
			if ev.P1 != 3 {
				t.Errorf("P1 = %d, want 3", ev.P1)
			}
		})
	}
}

func TestDecode_TrackEvents(t *testing.T) {
	kinds := []EventKind{
		EventSongStarted, EventSongFinished, EventTrackInfoChanged,
		EventTrackFocusCurrent, EventCursorMoved,
	}
	for _, kind := range kinds {
		ev, err := Decode(RawEvent{Kind: kind, Context: TrackEvent{Track: 7}})
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", kind, err)
		}
		if te, ok := ev.Payload.(TrackEvent); !ok || te.Track != 7 {
			t.Errorf("Decode(%s) payload = %#v, want TrackEvent{7}", kind, ev.Payload)
		}
	}
}

func TestDecode_Seeked(t *testing.T) {
	ev, err := Decode(RawEvent{Kind: EventSeeked, Context: PlayPosition{Track: 4, Position: 12.5}})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if pp, ok := ev.Payload.(PlayPosition); !ok || pp.Position != 12.5 {
		t.Errorf("payload = %#v, want PlayPosition at 12.5", ev.Payload)
	}
}

func TestDecode_Mismatch(t *testing.T) {
	_, err := Decode(RawEvent{Kind: EventSongChanged, Context: TrackEvent{Track: 1}})
	if !errors.Is(err, ErrPayloadMismatch) {
		t.Errorf("Decode() error = %v, want ErrPayloadMismatch", err)
	}

	_, err = Decode(RawEvent{Kind: EventSongStarted, Context: 42})
	if !errors.Is(err, ErrPayloadMismatch) {
		t.Errorf("Decode() error = %v, want ErrPayloadMismatch", err)
	}
}

func TestDecode_MissingPayload(t *testing.T) {
	var nilChange *TrackChange
	for _, ctx := range []any{nil, nilChange} {
		_, err := Decode(RawEvent{Kind: EventSongChanged, Context: ctx})
		if !errors.Is(err, ErrMissingPayload) {
			t.Errorf("Decode(%#v) error = %v, want ErrMissingPayload", ctx, err)
		}
	}
}

func TestDecode_NoPayloadKindsIgnoreContext(t *testing.T) {
	ev, err := Decode(RawEvent{Kind: EventPaused, Context: "garbage", P1: 1})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if ev.Payload != nil {
		t.Errorf("Payload = %#v, want nil", ev.Payload)
	}
	if ev.P1 != 1 {
		t.Errorf("P1 = %d, want 1", ev.P1)
	}
}

func TestDecode_UnknownKind(t *testing.T) {
	ev, err := Decode(RawEvent{Kind: 4242, Context: TrackChange{}})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if ev.Kind.Known() {
		t.Error("Known() = true for unknown kind")
	}
	if ev.Payload != nil {
		t.Errorf("Payload = %#v, want nil", ev.Payload)
	}
}

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventSongChanged, "SONGCHANGED"},
		{EventPaused, "PAUSED"},
		{EventTogglePause, "TOGGLE_PAUSE"},
		{EventKind(999), "EventKind(999)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", uint32(tt.kind), got, tt.want)
		}
	}
}
