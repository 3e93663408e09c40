// pkg/game/providers.go
package game

import (
	"context"

	"github.com/google/wire"

	"github.com/opd-ai/go-spaceman/pkg/assets"
	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
	"github.com/opd-ai/go-spaceman/pkg/render"
	"github.com/opd-ai/go-spaceman/pkg/resource"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

// ProviderSet builds a Session from settings, a logger and the data
// filesystem.
var ProviderSet = wire.NewSet(
	event.NewEventBus,
	render.NewWidgetIndex,
	render.NewEngine,
	prototype.NewLoader,
	ProvideRegistry,
	assets.NewLibrary,
	ProvideResources,
	ProvideEnv,
	NewWorld,
	NewPlayer,
	NewControls,
	ProvideHUD,
	NewSession,
)

// ProvideRegistry loads every prototype. Any descriptor error fails the
// session.
func ProvideRegistry(ctx context.Context, loader *prototype.Loader) (*prototype.Registry, error) {
	reg, err := loader.Load(ctx)
	if err != nil {
		return nil, logging.WrapError(err, "load prototypes")
	}
	return reg, nil
}

// ProvideResources creates the background goroutine manager.
func ProvideResources(settings *config.Settings, logger *logging.Logger) *resource.Manager {
	return resource.NewManager(settings.Resources, logger)
}

// ProvideEnv binds entities to the scene, the prototypes and the sprites.
func ProvideEnv(engine *render.Engine, reg *prototype.Registry, lib *assets.Library, bus *event.Bus) *entity.Env {
	return &entity.Env{
		Scene:    engine,
		Registry: reg,
		Sprites:  lib,
		Scale:    lib.Scale(),
		Bus:      bus,
	}
}

// ProvideHUD builds the player's HUD for the configured resolution.
func ProvideHUD(index *render.WidgetIndex, lib *assets.Library, player *Player, settings *config.Settings) *ui.HUD {
	return ui.NewHUD(index, lib, player, settings.Width(), settings.Height())
}
