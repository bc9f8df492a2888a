// Package engine defines the contract between a media-player engine and the
// MPRIS bridge: the capability table the engine exposes, the events it
// delivers, and the tag records it owns.
package engine

// Track is an opaque engine handle for a playable item.
// The zero value means "no track".
type Track uint64

// NoTrack is returned by engines when nothing is playing.
const NoTrack Track = 0

// Output device state codes.
const (
	OutputStopped = 0
	OutputPlaying = 1
	OutputPaused  = 2
)

// OutputDevice is the engine's audio sink.
type OutputDevice struct {
	Pause func() error
	State func() int
}

// TagRecord is one key/value entry of a track's metadata.
// Records are owned by the engine and linked until Next is nil.
type TagRecord struct {
	Key   string
	Value string
	Next  *TagRecord
}

// Tag is a copied key/value pair, safe to use without the engine lock.
type Tag struct {
	Key   string
	Value string
}

// API is the capability table of an engine.
// Any field may be nil when the engine does not provide that capability;
// callers must fail the single operation that needs it, never the whole service.
type API struct {
	// SendCommand forwards a command token (NEXT, PREV, STOP...) to the engine.
	SendCommand func(kind EventKind) error

	// Output returns the active output device, or nil when there is none.
	Output func() *OutputDevice

	// PlayingTrack returns the currently playing track, or NoTrack.
	PlayingTrack func() Track

	// MetadataHead returns the first tag record of a track, or nil.
	// Must only be called with the metadata lock held.
	MetadataHead func(t Track) *TagRecord

	// Lock and Unlock guard every tag record of the engine.
	Lock   func()
	Unlock func()

	// ShuffleState returns a positive value when shuffle is enabled.
	ShuffleState func() int

	// Subscribe registers a handler for engine events. Events are delivered
	// in order on a single engine goroutine. The returned func unsubscribes.
	Subscribe func(handler func(RawEvent)) (cancel func())
}

// Send forwards a command token to the engine.
func (a *API) Send(kind EventKind) error {
	if a == nil || a.SendCommand == nil {
		return missing("sendCommand")
	}
	return a.SendCommand(kind)
}

// Device returns the active output device. A nil device with a nil error
// means the engine has no output right now.
func (a *API) Device() (*OutputDevice, error) {
	if a == nil || a.Output == nil {
		return nil, missing("getOutput")
	}
	return a.Output(), nil
}

// Playing returns the currently playing track.
func (a *API) Playing() (Track, error) {
	if a == nil || a.PlayingTrack == nil {
		return NoTrack, missing("getPlayingTrack")
	}
	return a.PlayingTrack(), nil
}

// Shuffle returns the raw shuffle state.
func (a *API) Shuffle() (int, error) {
	if a == nil || a.ShuffleState == nil {
		return 0, missing("getShuffleState")
	}
	return a.ShuffleState(), nil
}
