// Package host is a small playback engine: a playlist of audio files
// played through a player and exposed as an engine.API.
package host

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/player"
)

// ErrUnsupportedCommand is returned for command tokens the host does not
// execute.
var ErrUnsupportedCommand = errors.New("unsupported command")

type subscriber struct {
	id int
	fn func(engine.RawEvent)
}

type entry struct {
	path string
}

// Host owns the playlist and the playback state.
type Host struct {
	player player.Interface
	read   InfoReader
	log    logrus.FieldLogger
	device *engine.OutputDevice

	mu      sync.Mutex
	entries []entry // track n is entries[n-1]
	order   []int   // play order, indices into entries
	pos     int     // index into order, -1 before the first track
	current engine.Track
	shuffle bool
	pending []engine.RawEvent
	wake    chan struct{}

	// tagMu guards heads. It is the engine metadata lock.
	tagMu sync.Mutex
	heads map[engine.Track]*engine.TagRecord

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// Option configures a Host.
type Option func(*Host)

// WithInfoReader replaces how audio files are described.
func WithInfoReader(read InfoReader) Option {
	return func(h *Host) { h.read = read }
}

// WithShuffle starts the host with shuffle enabled.
func WithShuffle(on bool) Option {
	return func(h *Host) { h.shuffle = on }
}

// New returns a Host playing through p.
func New(p player.Interface, log logrus.FieldLogger, opts ...Option) *Host {
	h := &Host{
		player: p,
		read:   player.ExtractFullMetadata,
		log:    log.WithField("component", "host"),
		pos:    -1,
		wake:   make(chan struct{}, 1),
		heads:  map[engine.Track]*engine.TagRecord{},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.device = &engine.OutputDevice{
		Pause: h.pauseOutput,
		State: h.outputState,
	}
	p.OnFinished(h.trackFinished)
	return h
}

// API returns the capability table of the host.
func (h *Host) API() *engine.API {
	return &engine.API{
		SendCommand:  h.SendCommand,
		Output:       func() *engine.OutputDevice { return h.device },
		PlayingTrack: h.PlayingTrack,
		MetadataHead: h.metadataHead,
		Lock:         h.tagMu.Lock,
		Unlock:       h.tagMu.Unlock,
		ShuffleState: h.shuffleState,
		Subscribe:    h.Subscribe,
	}
}

// Add appends audio files to the playlist. Files that are not music are
// skipped; files whose tags cannot be read are added with what is known.
func (h *Host) Add(paths ...string) []engine.Track {
	music, other := lo.FilterReject(paths, func(p string, _ int) bool {
		return player.IsMusicFile(p)
	})
	for _, p := range other {
		h.log.WithField("path", p).Warn("skipping unsupported file")
	}

	added := make([]engine.Track, 0, len(music))
	for _, path := range music {
		head, err := readTags(h.read, path)
		if err != nil {
			h.log.WithError(err).WithField("path", path).Warn("reading track info")
		}

		h.mu.Lock()
		h.entries = append(h.entries, entry{path: path})
		track := engine.Track(len(h.entries))
		h.order = append(h.order, len(h.entries)-1)
		h.mu.Unlock()

		h.tagMu.Lock()
		h.heads[track] = head
		h.tagMu.Unlock()

		added = append(added, track)
	}

	h.mu.Lock()
	if h.shuffle {
		h.reorderLocked()
	}
	h.mu.Unlock()
	return added
}

// SetShuffle switches shuffle on or off. The playing track keeps playing.
func (h *Host) SetShuffle(on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shuffle = on
	h.reorderLocked()
}

func (h *Host) reorderLocked() {
	indices := lo.Range(len(h.entries))
	if h.shuffle {
		indices = lo.Shuffle(indices)
	}
	h.order = indices
	h.pos = -1
	if h.current != engine.NoTrack {
		h.pos = lo.IndexOf(h.order, int(h.current)-1)
	}
}

func (h *Host) shuffleState() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.shuffle {
		return 1
	}
	return 0
}

// PlayingTrack returns the track being played or paused.
func (h *Host) PlayingTrack() engine.Track {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Host) metadataHead(t engine.Track) *engine.TagRecord {
	return h.heads[t]
}

// SendCommand executes a command token.
func (h *Host) SendCommand(kind engine.EventKind) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.WithField("command", kind).Debug("command")

	switch kind {
	case engine.EventPlayCurrent:
		return h.playCurrentLocked()
	case engine.EventNext:
		return h.stepLocked(1)
	case engine.EventPrev:
		return h.stepLocked(-1)
	case engine.EventStop:
		h.stopLocked()
		return nil
	case engine.EventPause:
		h.pauseLocked()
		return nil
	case engine.EventTogglePause:
		st := h.player.State()
		if !st.IsActive() {
			return h.playCurrentLocked()
		}
		h.player.Toggle()
		var p1 uint32
		if st.CanPause() {
			p1 = 1
		}
		h.enqueueLocked(engine.RawEvent{Kind: engine.EventPaused, P1: p1})
		return nil
	}
	return fmt.Errorf("%s: %w", kind, ErrUnsupportedCommand)
}

func (h *Host) playCurrentLocked() error {
	switch h.player.State() {
	case player.Paused:
		h.resumeLocked()
		return nil
	case player.Playing:
		return nil
	}
	if len(h.order) == 0 {
		return nil
	}
	return h.startLocked(max(h.pos, 0))
}

func (h *Host) stepLocked(delta int) error {
	if len(h.order) == 0 {
		return nil
	}
	next := h.pos + delta
	if next >= len(h.order) {
		h.stopLocked()
		return nil
	}
	return h.startLocked(max(next, 0))
}

// startLocked plays order[pos] and announces the change.
func (h *Host) startLocked(pos int) error {
	idx := h.order[pos]
	path := h.entries[idx].path
	playTime := h.playTime()
	if err := h.player.Play(path); err != nil {
		return fmt.Errorf("playing %s: %w", path, err)
	}

	from, to := h.current, engine.Track(idx+1)
	h.pos = pos
	h.current = to
	filled := h.fillDuration(to)
	h.enqueueLocked(engine.RawEvent{
		Kind: engine.EventSongChanged,
		Context: engine.TrackChange{
			From:             from,
			To:               to,
			PlayTime:         playTime,
			StartedTimestamp: time.Now().Unix(),
		},
	})
	h.enqueueLocked(engine.RawEvent{
		Kind:    engine.EventSongStarted,
		Context: engine.TrackEvent{Track: to},
	})
	if filled {
		h.enqueueLocked(engine.RawEvent{
			Kind:    engine.EventTrackInfoChanged,
			Context: engine.TrackEvent{Track: to},
		})
	}
	return nil
}

// playTime returns how long the current track has played, in seconds.
func (h *Host) playTime() float32 {
	if h.current == engine.NoTrack {
		return 0
	}
	return float32(h.player.Position().Seconds())
}

// fillDuration adds a :DURATION record from the decoded stream when the
// file's tags had none. It reports whether the records changed.
func (h *Host) fillDuration(t engine.Track) bool {
	d := h.player.Duration()
	if d <= 0 {
		return false
	}
	h.tagMu.Lock()
	defer h.tagMu.Unlock()

	rec := &engine.TagRecord{Key: tagDuration, Value: formatDuration(d)}
	head := h.heads[t]
	if head == nil {
		h.heads[t] = rec
		return true
	}
	last := head
	for ; ; last = last.Next {
		if last.Key == tagDuration {
			return false
		}
		if last.Next == nil {
			break
		}
	}
	last.Next = rec
	return true
}

func (h *Host) stopLocked() {
	playTime := h.playTime()
	h.player.Stop()
	if h.current != engine.NoTrack {
		h.enqueueLocked(engine.RawEvent{
			Kind:    engine.EventSongChanged,
			Context: engine.TrackChange{From: h.current, PlayTime: playTime},
		})
		h.current = engine.NoTrack
	}
	h.enqueueLocked(engine.RawEvent{Kind: engine.EventStop})
}

func (h *Host) pauseLocked() {
	if !h.player.State().CanPause() {
		return
	}
	h.player.Pause()
	h.enqueueLocked(engine.RawEvent{Kind: engine.EventPaused, P1: 1})
}

func (h *Host) resumeLocked() {
	if !h.player.State().CanResume() {
		return
	}
	h.player.Resume()
	h.enqueueLocked(engine.RawEvent{Kind: engine.EventPaused, P1: 0})
}

func (h *Host) pauseOutput() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pauseLocked()
	return nil
}

func (h *Host) outputState() int {
	switch h.player.State() {
	case player.Playing:
		return engine.OutputPlaying
	case player.Paused:
		return engine.OutputPaused
	default:
		return engine.OutputStopped
	}
}

// trackFinished advances to the next track when one plays to its end.
func (h *Host) trackFinished() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != engine.NoTrack {
		h.enqueueLocked(engine.RawEvent{
			Kind:    engine.EventSongFinished,
			Context: engine.TrackEvent{Track: h.current},
		})
	}
	if err := h.stepLocked(1); err != nil {
		h.log.WithError(err).Warn("advancing playlist")
		h.stopLocked()
	}
}

// Close stops playback.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.player.Stop()
}
