// cmd/spaceman/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/opd-ai/go-spaceman/data"
	"github.com/opd-ai/go-spaceman/pkg/audio"
	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/game"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/render"
	ebitenrender "github.com/opd-ai/go-spaceman/pkg/render/ebiten"
	engorender "github.com/opd-ai/go-spaceman/pkg/render/engo"
	"github.com/opd-ai/go-spaceman/pkg/render/tui"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	dataDir := flag.String("data", "", "Data directory (overrides config, default: bundled data)")
	renderer := flag.String("renderer", "ebiten", "Renderer type: 'ebiten', 'engo', 'terminal' or 'null'")
	watch := flag.Bool("watch", false, "Reload prototypes when the data directory changes")
	frames := flag.Int("frames", 600, "Frames to run with the null renderer")
	dev := flag.Bool("dev", false, "Enable developer keys")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

	settings, err := loadSettings(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		settings.DataDir = *dataDir
	}
	if *dev {
		settings.DevMode = true
	}

	session, err := game.InitializeSession(ctx, settings, logger, dataFS(settings))
	if err != nil {
		logger.Error(ctx, "Failed to start session", err)
		os.Exit(1)
	}

	if err := run(ctx, session, *renderer, *watch, *frames); err != nil {
		logger.Error(ctx, "Game exited with error", err)
		os.Exit(1)
	}
}

// loadSettings reads the config file if it exists, then applies the
// environment and validates the result.
func loadSettings(path string) (*config.Settings, error) {
	settings := config.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		settings, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if err := settings.ApplyEnvironment(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

func dataFS(settings *config.Settings) fs.FS {
	if settings.DataDir != "" {
		return os.DirFS(settings.DataDir)
	}
	return data.FS
}

func run(ctx context.Context, session *game.Session, renderer string, watch bool, frames int) error {
	if err := game.DevCampaign().BasicStart(session); err != nil {
		return closeWith(session, err)
	}
	if watch {
		if session.Settings.DataDir == "" {
			session.Logger.Warn(ctx, "Watching needs -data, bundled data cannot change")
		} else if err := session.Watch(session.Settings.DataDir); err != nil {
			return closeWith(session, err)
		}
	}
	if session.Settings.Audio && renderer != "null" {
		startAudio(ctx, session)
	}

	session.Logger.Info(ctx, "Starting game", "renderer", renderer, "ship", session.Player.Ship().Name())

	switch renderer {
	case "engo":
		engorender.Run(session)
		return nil
	case "terminal":
		return runTerminal(ctx, session)
	case "null":
		return runHeadless(ctx, session, frames)
	case "ebiten":
		return ebitenrender.Run(session)
	default:
		return closeWith(session, fmt.Errorf("unknown renderer %q", renderer))
	}
}

func startAudio(ctx context.Context, session *game.Session) {
	out, err := audio.OpenSpeaker()
	if err != nil {
		// Non-fatal, the game runs silent
		session.Logger.Warn(ctx, "Audio initialization failed", "error", err)
		return
	}
	cue := audio.NewFireCue(session.Bus, out, session.Logger)
	session.OnClose(cue.Close)
}

// runTerminal draws the game into the terminal with tcell.
func runTerminal(ctx context.Context, session *game.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return closeWith(session, err)
	}
	if err := screen.Init(); err != nil {
		return closeWith(session, err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := tui.Run(ctx, session, screen)
	screen.Fini()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	return closeWith(session, runErr)
}

// runHeadless steps the session without a display, for smoke tests and
// profiling.
func runHeadless(ctx context.Context, session *game.Session, frames int) error {
	canvas := render.NewNullCanvas(session.Settings.Width(), session.Settings.Height(), session.Logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(session.TickDuration())
	defer ticker.Stop()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return closeWith(session, nil)
		case <-ticker.C:
		}
		session.Update()
		canvas.Reset()
		session.Draw(canvas)
	}

	session.Logger.Info(ctx, "Headless run finished",
		"frames", session.Frame(),
		"ticks", session.World.Tick,
		"draw_calls", len(canvas.Calls))
	return closeWith(session, nil)
}

func closeWith(session *game.Session, err error) error {
	ctx, cancel := context.WithTimeout(context.Background(), session.Settings.Resources.ShutdownTimeout)
	defer cancel()
	return multierr.Append(err, session.Close(ctx))
}
