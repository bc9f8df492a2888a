package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/empress/internal/config"
	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/errmsg"
	"github.com/llehouerou/empress/internal/host"
	"github.com/llehouerou/empress/internal/logging"
	"github.com/llehouerou/empress/internal/metadata"
	"github.com/llehouerou/empress/internal/mpris"
	"github.com/llehouerou/empress/internal/notify"
	"github.com/llehouerou/empress/internal/player"
)

var errNoPlayableFiles = errors.New("no playable files")

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		name    string
		shuffle bool
		notifs  bool
	)
	cmd := &cobra.Command{
		Use:   "serve [flags] FILE...",
		Short: "Play files and expose playback on the session bus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return errmsg.Wrap(errmsg.OpConfigLoad, err)
			}
			if cmd.Flags().Changed("name") {
				cfg.MPRIS.Name = name
			}
			if cmd.Flags().Changed("shuffle") {
				cfg.Player.Shuffle = shuffle
			}
			if cmd.Flags().Changed("notify") {
				cfg.Notify.Enabled = notifs
			}

			log, closeLog, err := logging.New(cfg.Log, nil, cmd.ErrOrStderr())
			if err != nil {
				return errmsg.Wrap(errmsg.OpLogSetup, err)
			}
			defer func() { _ = closeLog() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log, player.New(), nil, args)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Bus name suffix (overrides [mpris] name)")
	cmd.Flags().BoolVarP(&shuffle, "shuffle", "s", false, "Shuffle the playlist")
	cmd.Flags().BoolVar(&notifs, "notify", false, "Show a desktop notification on track change")
	return cmd
}

// serve plays paths and keeps the media player registered until ctx is
// done. A nil dial uses the session bus.
func serve(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, p player.Interface, dial func() (mpris.Conn, error), paths []string) error {
	h := host.New(p, log, host.WithShuffle(cfg.Player.Shuffle))
	defer h.Close()
	if len(h.Add(paths...)) == 0 {
		return errmsg.Wrap(errmsg.OpPlaylistAdd, errNoPlayableFiles)
	}

	if cfg.Notify.Enabled {
		np := notify.NewNowPlaying(
			notify.New(notify.App{Name: cfg.MPRIS.Identity, DesktopEntry: cfg.MPRIS.DesktopEntry}),
			h.API(), metadata.NewArtProbe(nil), int32(cfg.Notify.TimeoutMS), log,
		)
		defer h.Subscribe(np.Handle)()
	}

	opts := cfg.MPRIS.Options()
	opts.Logger = log
	opts.Dial = dial
	svc := mpris.New(opts)
	if err := svc.Start(h.API()); err != nil {
		return errmsg.Wrap(errmsg.OpServiceStart, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		_ = h.Run(ctx)
	}()

	if err := h.SendCommand(engine.EventPlayCurrent); err != nil {
		log.WithError(err).Error(errmsg.Format(errmsg.OpPlaybackStart, err))
	}

	<-ctx.Done()
	svc.Exit()
	<-svc.Done()
	cancel()
	<-dispatched
	if err := svc.Err(); err != nil {
		return errmsg.Wrap(errmsg.OpServiceStop, err)
	}
	log.Info("stopped")
	return nil
}
