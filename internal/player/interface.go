package player

import "time"

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	// OnFinished registers fn to run when a track plays to its end.
	// fn is not called for tracks stopped with Stop or replaced by Play.
	OnFinished(fn func())
}

var _ Interface = (*Player)(nil)
