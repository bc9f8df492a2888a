package notify

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/metadata"
)

// NowPlaying shows a notification whenever a new track starts. Each one
// replaces the previous notification.
type NowPlaying struct {
	notifier Notifier
	api      *engine.API
	probe    *metadata.ArtProbe
	timeout  int32
	log      logrus.FieldLogger

	mu     sync.Mutex
	lastID uint32
}

// NewNowPlaying returns a NowPlaying reading track tags from api.
func NewNowPlaying(n Notifier, api *engine.API, probe *metadata.ArtProbe, timeoutMS int32, log logrus.FieldLogger) *NowPlaying {
	return &NowPlaying{notifier: n, api: api, probe: probe, timeout: timeoutMS, log: log}
}

// Handle is an engine event handler.
func (np *NowPlaying) Handle(raw engine.RawEvent) {
	if raw.Kind != engine.EventSongChanged {
		return
	}
	ev, err := engine.Decode(raw)
	if err != nil {
		return
	}
	change := ev.Payload.(engine.TrackChange)
	if change.To == engine.NoTrack {
		return
	}

	tags, err := np.api.Tags(change.To)
	if err != nil {
		np.log.WithError(err).Warn("reading tags for notification")
		return
	}
	n := build(metadata.Extract(change.To, tags, np.probe))
	n.Timeout = np.timeout

	np.mu.Lock()
	defer np.mu.Unlock()
	n.ReplacesID = np.lastID
	id, err := np.notifier.Notify(n)
	if err != nil {
		np.log.WithError(err).Warn("sending notification")
		return
	}
	np.lastID = id
}

func build(md metadata.Metadata) Notification {
	n := Notification{Title: "Unknown track", Urgency: UrgencyLow}
	if v, ok := md[metadata.KeyTitle].Value().(string); ok && v != "" {
		n.Title = v
	}
	artists, _ := md[metadata.KeyArtist].Value().([]string)
	body := strings.Join(artists, ", ")
	if album, ok := md[metadata.KeyAlbum].Value().(string); ok && album != "" {
		if body != "" {
			body += " - "
		}
		body += album
	}
	n.Body = body
	if art, ok := md[metadata.KeyArtURL].Value().(string); ok {
		n.Icon = strings.TrimPrefix(art, "file://")
	}
	return n
}
