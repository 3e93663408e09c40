// pkg/game/session.go
package game

import (
	"context"
	"errors"
	"time"

	"go.uber.org/multierr"

	"github.com/opd-ai/go-spaceman/pkg/assets"
	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
	"github.com/opd-ai/go-spaceman/pkg/render"
	"github.com/opd-ai/go-spaceman/pkg/resource"
	"github.com/opd-ai/go-spaceman/pkg/scenery"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

// Session is everything one run of the game shares: the scene, the
// prototypes, the world and the player. Backends drive it with Update and
// Draw from their own loop.
type Session struct {
	Settings  *config.Settings
	Logger    *logging.Logger
	Bus       *event.Bus
	Registry  *prototype.Registry
	Loader    *prototype.Loader
	Widgets   *render.WidgetIndex
	Engine    *render.Engine
	Assets    *assets.Library
	Resources *resource.Manager
	Env       *entity.Env
	World     *World
	Player    *Player
	Controls  *Controls
	HUD       *ui.HUD
	Starfield *scenery.Starfield

	watcher *prototype.Watcher
	frame   uint64
	closers []func()
}

// NewSession assembles a session from its parts. The HUD is registered as
// the first mouse target.
func NewSession(
	settings *config.Settings,
	logger *logging.Logger,
	bus *event.Bus,
	registry *prototype.Registry,
	loader *prototype.Loader,
	engine *render.Engine,
	lib *assets.Library,
	rm *resource.Manager,
	env *entity.Env,
	world *World,
	player *Player,
	controls *Controls,
	hud *ui.HUD,
) *Session {
	controls.Dev = settings.DevMode
	controls.AddTarget(hud)
	return &Session{
		Settings:  settings,
		Logger:    logger,
		Bus:       bus,
		Registry:  registry,
		Loader:    loader,
		Widgets:   engine.Widgets(),
		Engine:    engine,
		Assets:    lib,
		Resources: rm,
		Env:       env,
		World:     world,
		Player:    player,
		Controls:  controls,
		HUD:       hud,
	}
}

// TickDuration returns the fixed update step.
func (s *Session) TickDuration() time.Duration {
	tps := s.Settings.TicksPerSecond
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// Frame returns the number of rendered frames.
func (s *Session) Frame() uint64 { return s.frame }

// Update runs one fixed step: pending prototype reloads, then the world,
// then the background.
func (s *Session) Update() {
	s.reload()
	dt := s.TickDuration().Seconds()
	s.World.Update(dt)
	if s.Starfield != nil {
		s.Starfield.Update(dt)
	}
}

// Draw renders one frame to canvas.
func (s *Session) Draw(canvas render.Canvas) {
	s.Engine.Render(&render.FrameContext{
		Mouse:  s.Controls.Mouse(),
		Canvas: canvas,
		Frame:  s.frame,
	})
	s.frame++
}

// Watch reloads prototypes whenever a descriptor under root changes.
func (s *Session) Watch(root string) error {
	if s.watcher != nil {
		return errors.New("game: already watching")
	}
	w, err := prototype.NewWatcher(root, s.Resources, s.Logger)
	if err != nil {
		return logging.WrapError(err, "game: watch %s", root)
	}
	s.watcher = w
	return nil
}

// OnClose registers fn to run when the session closes.
func (s *Session) OnClose(fn func()) {
	s.closers = append(s.closers, fn)
}

// reload drains the watcher and swaps in freshly loaded prototypes. A
// load with errors keeps the current ones.
func (s *Session) reload() {
	if s.watcher == nil {
		return
	}
	changed := s.watcher.Drain()
	if len(changed) == 0 {
		return
	}

	ctx := context.Background()
	reg, err := s.Loader.Load(ctx)
	if err != nil {
		s.Logger.Error(ctx, "prototype reload failed, keeping current prototypes", err, "changed", changed)
		return
	}
	s.Registry.Replace(reg)
	s.Bus.Publish(&event.BaseEvent{EventType: event.PrototypesReloaded, Source: s})
	s.Logger.Info(ctx, "prototypes reloaded", "changed", len(changed))
}

// Close stops background work, waiting at most the configured shutdown
// timeout.
func (s *Session) Close(ctx context.Context) error {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.HUD.Close()

	var err error
	if s.watcher != nil {
		err = multierr.Append(err, s.watcher.Close())
	}
	return multierr.Append(err, s.Resources.Shutdown(ctx))
}

var (
	_ scenery.Mover = (*Player)(nil)
	_ ui.Pilot      = (*Player)(nil)
)
