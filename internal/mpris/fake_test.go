package mpris

import (
	"errors"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/llehouerou/empress/internal/engine"
)

// fakeEngine is an in-memory engine whose state tests set directly.
type fakeEngine struct {
	mu       sync.Mutex
	tagMu    sync.Mutex
	sent     []engine.EventKind
	device   *engine.OutputDevice
	state    int
	pauses   int
	pauseErr error
	playing  engine.Track
	shuffle  int
	tracks   map[engine.Track][]string
}

func newFakeEngine() *fakeEngine {
	f := &fakeEngine{tracks: map[engine.Track][]string{}}
	f.device = &engine.OutputDevice{
		Pause: func() error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.pauses++
			return f.pauseErr
		},
		State: func() int {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.state
		},
	}
	return f
}

func (f *fakeEngine) api() *engine.API {
	return &engine.API{
		SendCommand: func(kind engine.EventKind) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.sent = append(f.sent, kind)
			return nil
		},
		Output: func() *engine.OutputDevice {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.device
		},
		PlayingTrack: func() engine.Track {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.playing
		},
		MetadataHead: func(t engine.Track) *engine.TagRecord {
			pairs := f.tracks[t]
			var head *engine.TagRecord
			for i := len(pairs) - 2; i >= 0; i -= 2 {
				head = &engine.TagRecord{Key: pairs[i], Value: pairs[i+1], Next: head}
			}
			return head
		},
		Lock:   f.tagMu.Lock,
		Unlock: f.tagMu.Unlock,
		ShuffleState: func() int {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.shuffle
		},
	}
}

func (f *fakeEngine) commands() []engine.EventKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.EventKind(nil), f.sent...)
}

type emission struct {
	path dbus.ObjectPath
	name string
	args []interface{}
}

// fakeConn records everything the service does with its bus connection.
type fakeConn struct {
	mu         sync.Mutex
	exported   map[string]interface{}
	requested  []string
	released   []string
	emitted    []emission
	closed     bool
	reply      dbus.RequestNameReply
	requestErr error
	exportErr  error
	emitErr    error
	releaseErr error
	closeErr   error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		exported: map[string]interface{}{},
		reply:    dbus.RequestNameReplyPrimaryOwner,
	}
}

func (c *fakeConn) Export(v interface{}, path dbus.ObjectPath, iface string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exportErr != nil {
		return c.exportErr
	}
	if path != ObjectPath {
		return errors.New("unexpected path " + string(path))
	}
	c.exported[iface] = v
	return nil
}

func (c *fakeConn) RequestName(name string, _ dbus.RequestNameFlags) (dbus.RequestNameReply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requested = append(c.requested, name)
	return c.reply, c.requestErr
}

func (c *fakeConn) ReleaseName(name string) (dbus.ReleaseNameReply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = append(c.released, name)
	return dbus.ReleaseNameReplyReleased, c.releaseErr
}

func (c *fakeConn) Emit(path dbus.ObjectPath, name string, values ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitted = append(c.emitted, emission{path: path, name: name, args: values})
	return c.emitErr
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return c.closeErr
}

func (c *fakeConn) emissions() []emission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]emission(nil), c.emitted...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// recorder is a Notifier keeping every change it receives.
type recorder struct {
	mu      sync.Mutex
	changes []map[string]dbus.Variant
	ifaces  []string
}

func (r *recorder) PropertiesChanged(iface string, changed map[string]dbus.Variant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ifaces = append(r.ifaces, iface)
	r.changes = append(r.changes, changed)
}

func quietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
