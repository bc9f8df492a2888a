package mpris

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/metadata"
)

type signal struct {
	iface   string
	changed map[string]dbus.Variant
}

// Service owns the bus connection and the exported MPRIS object.
//
// Bus method calls are served concurrently by the connection. Property
// changes are queued by the router and emitted only from Listen.
type Service struct {
	opts Options
	log  logrus.FieldLogger

	mu     sync.Mutex
	conn   Conn
	router *Router
	cancel func()
	err    error

	signals   chan signal
	ready     atomic.Bool
	listening atomic.Bool
	exit      atomic.Bool
	done      chan struct{}
}

// New returns an uninitialized Service.
func New(opts Options) *Service {
	opts = opts.withDefaults()
	return &Service{
		opts:    opts,
		log:     opts.Logger.WithField("component", "mpris"),
		signals: make(chan signal, opts.QueueSize),
		done:    make(chan struct{}),
	}
}

// Init connects to the bus, claims the service name and exports the
// media player object for api.
func (s *Service) Init(api *engine.API) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready.Load() {
		return ErrAlreadyInitialized
	}

	conn, err := s.opts.Dial()
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	probe := metadata.NewArtProbe(s.opts.ArtFs)
	if err := s.export(conn, api, probe); err != nil {
		_ = conn.Close()
		return err
	}

	name := s.opts.BusName()
	reply, err := conn.RequestName(name, dbus.NameFlagAllowReplacement|dbus.NameFlagReplaceExisting|dbus.NameFlagDoNotQueue)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("requesting name %s: %w", name, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner && reply != dbus.RequestNameReplyAlreadyOwner {
		_ = conn.Close()
		return fmt.Errorf("requesting name %s: %w", name, ErrNameTaken)
	}

	s.conn = conn
	s.router = NewRouter(api, probe, s, s.log)
	s.ready.Store(true)
	s.log.WithField("name", name).Info("registered media player")
	return nil
}

func (s *Service) export(conn Conn, api *engine.API, probe *metadata.ArtProbe) error {
	root := &rootAdapter{opts: s.opts, log: s.log}
	player := newPlayerAdapter(api, probe, s.log)
	rootProps, playerProps := root.properties(), player.properties()
	props := newProperties(map[string]propertyTable{
		RootInterface:   rootProps,
		PlayerInterface: playerProps,
	}, s.log)
	node := introspectNode(root, rootProps, player, playerProps)

	exports := []struct {
		v     any
		iface string
	}{
		{root, RootInterface},
		{player, PlayerInterface},
		{props, PropertiesInterface},
		{introspect.NewIntrospectable(node), IntrospectableInterface},
	}
	for _, e := range exports {
		if err := conn.Export(e.v, ObjectPath, e.iface); err != nil {
			return fmt.Errorf("exporting %s: %w", e.iface, err)
		}
	}
	return nil
}

// Start initializes the service, subscribes to api's events when the
// engine supports it and runs Listen in the background.
func (s *Service) Start(api *engine.API) error {
	if err := s.Init(api); err != nil {
		return err
	}
	if api.Subscribe != nil {
		cancel := api.Subscribe(func(ev engine.RawEvent) {
			_ = s.HandleEvent(ev)
		})
		s.mu.Lock()
		s.cancel = cancel
		s.mu.Unlock()
	}
	go func() {
		if err := s.Listen(); err != nil {
			s.log.WithError(err).Error("mpris listen")
		}
	}()
	return nil
}

// Listen emits queued property changes until Exit is called, then
// releases the name and closes the connection. Exit is observed within
// one poll interval. The returned error reports a failed teardown.
func (s *Service) Listen() (err error) {
	if !s.ready.Load() {
		return ErrNotInitialized
	}
	if !s.listening.CompareAndSwap(false, true) {
		return ErrAlreadyListening
	}
	defer close(s.done)
	defer func() { err = s.shutdown() }()

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for !s.exit.Load() {
		select {
		case sig := <-s.signals:
			s.emit(sig)
		case <-ticker.C:
		}
	}
	return nil
}

// Exit asks Listen to return.
func (s *Service) Exit() {
	s.exit.Store(true)
}

// Done is closed once Listen has returned.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// Err returns the teardown error of Listen. It is only meaningful once
// Done is closed.
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// HandleEvent routes one engine event.
func (s *Service) HandleEvent(raw engine.RawEvent) error {
	if !s.ready.Load() {
		return ErrNotInitialized
	}
	s.router.Handle(raw)
	return nil
}

// PropertiesChanged queues a change for emission. When the queue is full
// the change is dropped.
func (s *Service) PropertiesChanged(iface string, changed map[string]dbus.Variant) {
	select {
	case s.signals <- signal{iface: iface, changed: changed}:
	default:
		s.log.WithField("interface", iface).Warn("signal queue full, dropping PropertiesChanged")
	}
}

func (s *Service) emit(sig signal) {
	err := s.conn.Emit(ObjectPath, propertiesChanged, sig.iface, sig.changed, []string{})
	if err != nil {
		s.log.WithError(err).Warn("emitting PropertiesChanged")
	}
}

func (s *Service) shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.drain()

	var errs []error
	name := s.opts.BusName()
	if _, err := s.conn.ReleaseName(name); err != nil {
		errs = append(errs, fmt.Errorf("releasing name %s: %w", name, err))
	}
	if err := s.conn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing bus connection: %w", err))
	}
	s.err = errors.Join(errs...)
	if s.err != nil {
		return s.err
	}
	s.log.Info("media player unregistered")
	return nil
}

func (s *Service) drain() {
	for {
		select {
		case sig := <-s.signals:
			s.emit(sig)
		default:
			return
		}
	}
}
