package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/empress/internal/playback"
)

// rootAdapter implements org.mpris.MediaPlayer2.
type rootAdapter struct {
	opts Options
	log  logrus.FieldLogger
}

// Raise is accepted and ignored; the player has no window.
func (r *rootAdapter) Raise() *dbus.Error {
	r.log.Debug("raise requested")
	return nil
}

// Quit is accepted and ignored; the host owns the process lifetime.
func (r *rootAdapter) Quit() *dbus.Error {
	r.log.Debug("quit requested")
	return nil
}

func (r *rootAdapter) properties() propertyTable {
	return propertyTable{
		"CanQuit":          fixed(playback.CanQuit),
		"CanRaise":         fixed(playback.CanRaise),
		"CanSetFullscreen": fixed(playback.CanSetFullscreen),
		"HasTrackList":     fixed(playback.HasTrackList),
		"Fullscreen": {
			sig: "b",
			get: func() (any, error) { return playback.Fullscreen, nil },
			set: func(dbus.Variant) *dbus.Error {
				return notSupported("Fullscreen cannot be set")
			},
		},
		"Identity":            fixed(r.opts.Identity),
		"DesktopEntry":        fixed(r.opts.DesktopEntry),
		"SupportedUriSchemes": fixed(r.opts.URISchemes),
		"SupportedMimeTypes":  fixed(r.opts.MimeTypes),
	}
}
