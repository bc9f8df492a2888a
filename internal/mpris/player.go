package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/metadata"
	"github.com/llehouerou/empress/internal/playback"
)

// playerAdapter implements org.mpris.MediaPlayer2.Player on top of an
// engine. Transport methods forward engine commands.
type playerAdapter struct {
	api    *engine.API
	facade *playback.Facade
	probe  *metadata.ArtProbe
	log    logrus.FieldLogger
}

func newPlayerAdapter(api *engine.API, probe *metadata.ArtProbe, log logrus.FieldLogger) *playerAdapter {
	return &playerAdapter{
		api:    api,
		facade: playback.NewFacade(api),
		probe:  probe,
		log:    log,
	}
}

func (p *playerAdapter) send(kind engine.EventKind) *dbus.Error {
	if err := p.api.Send(kind); err != nil {
		p.log.WithError(err).WithField("command", kind).Warn("sending command")
		return dbus.MakeFailedError(err)
	}
	return nil
}

func (p *playerAdapter) Next() *dbus.Error      { return p.send(engine.EventNext) }
func (p *playerAdapter) Previous() *dbus.Error  { return p.send(engine.EventPrev) }
func (p *playerAdapter) Stop() *dbus.Error      { return p.send(engine.EventStop) }
func (p *playerAdapter) Play() *dbus.Error      { return p.send(engine.EventPlayCurrent) }
func (p *playerAdapter) PlayPause() *dbus.Error { return p.send(engine.EventTogglePause) }

// Pause pauses the output device, then tells the engine.
func (p *playerAdapter) Pause() *dbus.Error {
	dev, err := p.api.Device()
	if err != nil {
		return dbus.MakeFailedError(err)
	}
	if dev != nil {
		if dev.Pause == nil {
			return dbus.MakeFailedError(&engine.MissingCapabilityError{Name: "output.pause"})
		}
		if err := dev.Pause(); err != nil {
			p.log.WithError(err).Warn("pausing output")
			return dbus.MakeFailedError(err)
		}
	}
	return p.send(engine.EventPause)
}

func (p *playerAdapter) Seek(offset int64) *dbus.Error {
	return notSupported("CanSeek is permanently false")
}

func (p *playerAdapter) SetPosition(track dbus.ObjectPath, position int64) *dbus.Error {
	return notSupported("CanSeek is permanently false")
}

func (p *playerAdapter) OpenUri(uri string) *dbus.Error { //nolint:revive // D-Bus method name
	return notSupported("OpenUri is not supported")
}

func (p *playerAdapter) metadata() (any, error) {
	track, err := p.facade.PlayingTrack()
	if err != nil {
		return nil, err
	}
	md, err := trackMetadata(p.api, p.probe, track)
	if err != nil {
		return nil, err
	}
	return map[string]dbus.Variant(md), nil
}

func (p *playerAdapter) properties() propertyTable {
	return propertyTable{
		"PlaybackStatus": {sig: "s", get: func() (any, error) {
			state, err := p.facade.Status()
			if err != nil {
				return nil, err
			}
			return string(state.Status()), nil
		}},
		"Shuffle": writable[bool](property{sig: "b", get: func() (any, error) {
			return p.facade.Shuffle()
		}}),
		"Metadata":      {sig: "a{sv}", get: p.metadata},
		"Rate":          writable[float64](fixed(playback.Rate)),
		"Volume":        writable[float64](fixed(playback.Volume)),
		"MinimumRate":   fixed(playback.MinimumRate),
		"MaximumRate":   fixed(playback.MaximumRate),
		"Position":      fixed(playback.Position),
		"CanGoNext":     fixed(playback.CanGoNext),
		"CanGoPrevious": fixed(playback.CanGoPrevious),
		"CanPlay":       fixed(playback.CanPlay),
		"CanPause":      fixed(playback.CanPause),
		"CanSeek":       fixed(playback.CanSeek),
		"CanControl":    fixed(playback.CanControl),
	}
}

// trackMetadata builds the metadata of track. No track yields an empty map.
func trackMetadata(api *engine.API, probe *metadata.ArtProbe, track engine.Track) (metadata.Metadata, error) {
	if track == engine.NoTrack {
		return metadata.Metadata{}, nil
	}
	tags, err := api.Tags(track)
	if err != nil {
		return nil, err
	}
	return metadata.Extract(track, tags, probe), nil
}
