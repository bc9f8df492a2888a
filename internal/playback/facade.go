package playback

import "github.com/llehouerou/empress/internal/engine"

// Values reported for properties the engine does not expose.
const (
	Rate        = 1.0
	MinimumRate = 1.0
	MaximumRate = 1.0
	Volume      = 1.0
	Position    = int64(0)
)

// Facade answers point-in-time queries against an engine.
// Every method is read-only; nothing is cached.
type Facade struct {
	api *engine.API
}

// NewFacade returns a Facade over api.
func NewFacade(api *engine.API) *Facade {
	return &Facade{api: api}
}

// Status derives the playback state from the output device. Having no
// output device means nothing is playing.
func (f *Facade) Status() (State, error) {
	dev, err := f.api.Device()
	if err != nil {
		return StateStopped, err
	}
	if dev == nil {
		return StateStopped, nil
	}
	if dev.State == nil {
		return StateStopped, &engine.MissingCapabilityError{Name: "output.state"}
	}
	return FromCode(dev.State())
}

// Shuffle reports whether the engine shuffles its playlist.
func (f *Facade) Shuffle() (bool, error) {
	v, err := f.api.Shuffle()
	if err != nil {
		return false, err
	}
	return v > 0, nil
}

// PlayingTrack returns the track currently playing, or engine.NoTrack.
func (f *Facade) PlayingTrack() (engine.Track, error) {
	return f.api.Playing()
}

// Capabilities of the service. None of them depend on engine state.
const (
	CanQuit          = false
	CanRaise         = false
	CanSetFullscreen = false
	Fullscreen       = false
	HasTrackList     = false
	CanGoNext        = true
	CanGoPrevious    = true
	CanPlay          = true
	CanPause         = true
	CanSeek          = false
	CanControl       = true
)
