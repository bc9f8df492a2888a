package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/metadata"
	"github.com/llehouerou/empress/internal/playback"
)

// Notifier receives property changes to announce on the bus.
type Notifier interface {
	PropertiesChanged(iface string, changed map[string]dbus.Variant)
}

// Router turns engine events into property change notifications.
type Router struct {
	api    *engine.API
	probe  *metadata.ArtProbe
	notify Notifier
	log    logrus.FieldLogger
}

// NewRouter returns a Router reading track data from api.
func NewRouter(api *engine.API, probe *metadata.ArtProbe, notify Notifier, log logrus.FieldLogger) *Router {
	return &Router{api: api, probe: probe, notify: notify, log: log}
}

// Handle processes one engine event. Events that cannot be decoded or
// have no bus representation are logged and dropped.
func (r *Router) Handle(raw engine.RawEvent) {
	ev, err := engine.Decode(raw)
	if err != nil {
		r.log.WithError(err).WithField("event", raw.Kind).Error("decoding engine event")
		// SONGSTARTED signals a fixed status and never reads its payload.
		if raw.Kind != engine.EventSongStarted {
			return
		}
		ev = engine.Event{Kind: raw.Kind, P1: raw.P1, P2: raw.P2}
	}
	log := r.log.WithFields(logrus.Fields{"event": ev.Kind, "p1": ev.P1, "p2": ev.P2})

	switch ev.Kind {
	case engine.EventSongChanged:
		change, ok := ev.Payload.(engine.TrackChange)
		if !ok {
			log.Error("song change without track payload")
			return
		}
		md, err := trackMetadata(r.api, r.probe, change.To)
		if err != nil {
			log.WithError(err).Error("reading track metadata")
			return
		}
		r.playerChanged("Metadata", map[string]dbus.Variant(md))
	case engine.EventSongStarted:
		r.status(playback.StatePlaying)
	case engine.EventPaused:
		if ev.P1 > 0 {
			r.status(playback.StatePaused)
		} else {
			r.status(playback.StatePlaying)
		}
	default:
		if !ev.Kind.Known() {
			log.Warn("ignoring unknown engine event")
			return
		}
		log.Trace("engine event")
	}
}

func (r *Router) status(s playback.State) {
	r.playerChanged("PlaybackStatus", string(s.Status()))
}

func (r *Router) playerChanged(name string, value any) {
	r.notify.PropertiesChanged(PlayerInterface, map[string]dbus.Variant{
		name: dbus.MakeVariant(value),
	})
}
