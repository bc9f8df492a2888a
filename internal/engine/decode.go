package engine

import "fmt"

// Decode converts a raw engine event into an Event whose payload matches
// its kind. Only SONGCHANGED, the single-track events and SEEKED carry a
// payload; the context of every other kind is ignored. Unknown kinds decode
// without payload so the caller can decide how to treat them.
func Decode(raw RawEvent) (Event, error) {
	ev := Event{Kind: raw.Kind, P1: raw.P1, P2: raw.P2}

	var err error
	switch raw.Kind {
	case EventSongChanged:
		ev.Payload, err = decodeAs[TrackChange](raw)
	case EventSongStarted, EventSongFinished, EventTrackInfoChanged,
		EventTrackFocusCurrent, EventCursorMoved:
		ev.Payload, err = decodeAs[TrackEvent](raw)
	case EventSeeked:
		ev.Payload, err = decodeAs[PlayPosition](raw)
	}
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}

func decodeAs[T Payload](raw RawEvent) (Payload, error) {
	switch v := raw.Context.(type) {
	case nil:
		return nil, fmt.Errorf("%s: %w", raw.Kind, ErrMissingPayload)
	case T:
		return v, nil
	case *T:
		if v == nil {
			return nil, fmt.Errorf("%s: %w", raw.Kind, ErrMissingPayload)
		}
		return *v, nil
	default:
		var want T
		return nil, fmt.Errorf("%s: got %T, want %T: %w", raw.Kind, raw.Context, want, ErrPayloadMismatch)
	}
}
