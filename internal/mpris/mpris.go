// Package mpris exposes a playback engine on the session bus as an MPRIS
// media player.
//
// Method calls from bus peers are answered directly from the engine. Engine
// events are translated into PropertiesChanged signals which are queued and
// emitted by the goroutine running Service.Listen.
package mpris

import (
	"errors"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Bus names and paths of the MPRIS object.
const (
	ObjectPath              dbus.ObjectPath = "/org/mpris/MediaPlayer2"
	BusNamePrefix                           = "org.mpris.MediaPlayer2."
	RootInterface                           = "org.mpris.MediaPlayer2"
	PlayerInterface                         = "org.mpris.MediaPlayer2.Player"
	PropertiesInterface                     = "org.freedesktop.DBus.Properties"
	IntrospectableInterface                 = "org.freedesktop.DBus.Introspectable"

	propertiesChanged = PropertiesInterface + ".PropertiesChanged"
	errNotSupported   = "org.freedesktop.DBus.Error.NotSupported"
)

// Defaults applied by New for zero Options fields.
const (
	DefaultName         = "empress"
	DefaultIdentity     = "Empress"
	DefaultPollInterval = 100 * time.Millisecond
	DefaultQueueSize    = 64
)

var (
	DefaultURISchemes = []string{"file"}
	DefaultMimeTypes  = []string{"audio/mpeg", "audio/flac", "audio/x-wav"}
)

var (
	// ErrNotInitialized is returned when the service is used before Init.
	ErrNotInitialized = errors.New("mpris service not initialized")
	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("mpris service already initialized")
	// ErrAlreadyListening is returned when Listen runs twice.
	ErrAlreadyListening = errors.New("mpris service already listening")
	// ErrNameTaken is returned when another owner keeps the bus name.
	ErrNameTaken = errors.New("bus name is owned by another connection")
	// ErrUnsupportedPlatform is returned by the default dialer where no
	// session bus is available.
	ErrUnsupportedPlatform = errors.New("mpris is only supported on linux")
)

// Conn is the part of a bus connection the service uses.
// *dbus.Conn implements it.
type Conn interface {
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error
	Close() error
}

// Options configure a Service.
type Options struct {
	// Name is the bus name suffix, or a full name containing a dot.
	Name         string
	Identity     string
	DesktopEntry string
	URISchemes   []string
	MimeTypes    []string

	// PollInterval bounds how long Listen waits before checking for Exit.
	PollInterval time.Duration
	// QueueSize is the number of signals buffered before new ones are dropped.
	QueueSize int

	// ArtFs is searched for cover images. Nil means the OS filesystem.
	ArtFs afero.Fs
	// Dial opens the bus connection. Nil means the session bus.
	Dial   func() (Conn, error)
	Logger logrus.FieldLogger
}

// BusName returns the well-known name the service requests.
func (o Options) BusName() string {
	if strings.Contains(o.Name, ".") {
		return o.Name
	}
	return BusNamePrefix + o.Name
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Identity == "" {
		o.Identity = DefaultIdentity
	}
	if o.URISchemes == nil {
		o.URISchemes = DefaultURISchemes
	}
	if o.MimeTypes == nil {
		o.MimeTypes = DefaultMimeTypes
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.Dial == nil {
		o.Dial = dialSession
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

func notSupported(msg string) *dbus.Error {
	return dbus.NewError(errNotSupported, []interface{}{msg})
}
