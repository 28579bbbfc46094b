package cli

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/eko/internal/access"
	"github.com/llehouerou/eko/internal/app"
	"github.com/llehouerou/eko/internal/catalog"
	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/icons"
	"github.com/llehouerou/eko/internal/logging"
	"github.com/llehouerou/eko/internal/mpris"
	"github.com/llehouerou/eko/internal/notify"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/player"
	"github.com/llehouerou/eko/internal/state"
	"github.com/llehouerou/eko/internal/stderr"
	"github.com/llehouerou/eko/internal/ui/styles"
	"github.com/llehouerou/eko/internal/videobridge"
)

func runTUI(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, logCloser, err := logging.Init(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Info().Msg("eko starting")

	// The audio backend writes to fd 2; keep it off the alt screen.
	if err := stderr.Start(log); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	icons.Init(cfg.UI.Icons)
	styles.SetReduceTransparency(cfg.UI.ReduceTransparency)

	src, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	store, err := state.Open(cfg.State.Backend, cfg.State.Path)
	if err != nil {
		return errors.Wrap(err, "open state storage")
	}
	defer store.Close()
	bridge := state.NewBridge(store, state.WithLogger(log))

	engine := player.NewBeepEngine(player.WithGestureRequired(cfg.Playback.RequireGesture))
	adapter := player.NewAdapter(engine,
		player.WithConfig(player.Config{
			RetryAttempts:      cfg.Playback.RetryAttempts,
			RetryBackoff:       cfg.Playback.RetryBackoff,
			TimeUpdateInterval: cfg.Playback.TimeUpdateInterval,
		}),
		player.WithLogger(log),
	)
	defer adapter.Close()

	opts := []playback.Option{
		playback.WithPersister(bridge),
		playback.WithAutoAdvance(cfg.Playback.AutoAdvance),
		playback.WithLogger(log),
	}
	var videoURL string
	if cfg.HasVideo() {
		hub := videobridge.NewHub(videobridge.WithLogger(log))
		opts = append(opts, playback.WithVideoSurface(hub))
		videoURL = "http://" + cfg.Video.Listen + "/"
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.Video.Listen); err != nil {
				log.Error().Err(err).Msg(errmsg.Format(errmsg.OpVideoListen, err))
			}
		}()
	}

	svc := playback.New(adapter, opts...)
	defer svc.Close()

	// A single storage read; every control surface starts after it.
	bridge.Hydrate(svc)
	if cfg.UI.ReduceTransparency && !svc.Snapshot().ReduceTransparency {
		svc.SetReduceTransparency(true)
	}

	mp, err := mpris.New(svc, log)
	if err != nil {
		log.Warn().Err(err).Msg("mpris unavailable")
	} else {
		defer mp.Close()
	}

	if cfg.UI.Notifications {
		if n, err := notify.New(); err != nil {
			log.Debug().Err(err).Msg("desktop notifications unavailable")
		} else {
			go notify.NowPlaying(n, svc.Subscribe(), log)
		}
	}

	var reloads chan error
	if cfg.Catalog.Watch {
		reloads = make(chan error, 1)
		go func() {
			err := catalog.Watch(ctx, src, log, func(err error) {
				select {
				case reloads <- err:
				default:
				}
			})
			if err != nil {
				log.Warn().Err(err).Msg("catalog watch stopped")
			}
		}()
	}

	model := app.New(app.Deps{
		Playback: svc,
		Catalog:  src,
		Gate: access.StaticGate{
			Subscriber: cfg.Subscription.Entitled,
			Free:       cfg.Subscription.FreePlaylists,
		},
		Gesture:      engine.Gesture,
		Copy:         clipboard.WriteAll,
		ShareBaseURL: cfg.Share.BaseURL,
		ShareRef:     cfg.Share.Ref,
		VideoURL:     videoURL,
		Reloads:      reloads,
		Log:          log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run")
	}
	log.Info().Msg("eko stopped")
	return nil
}
