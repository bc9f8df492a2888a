// internal/playback/state.go
package playback

import (
	"fmt"

	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/empress/internal/engine"
)

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Status returns the MPRIS PlaybackStatus for s.
func (s State) Status() types.PlaybackStatus {
	switch s {
	case StatePlaying:
		return types.PlaybackStatusPlaying
	case StatePaused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

// ErrUnknownState is returned for output state codes outside the known set.
type ErrUnknownState struct {
	Code int
}

func (e ErrUnknownState) Error() string {
	return fmt.Sprintf("invalid playback state: %d", e.Code)
}

// FromCode maps an output device state code to a State.
func FromCode(code int) (State, error) {
	switch code {
	case engine.OutputStopped:
		return StateStopped, nil
	case engine.OutputPlaying:
		return StatePlaying, nil
	case engine.OutputPaused:
		return StatePaused, nil
	}
	return StateStopped, ErrUnknownState{Code: code}
}
