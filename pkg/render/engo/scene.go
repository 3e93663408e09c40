// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-spaceman/pkg/game"
)

// GameScene hosts a session inside engo.
type GameScene struct {
	session *game.Session
	stepper *game.Stepper

	world  *ecs.World
	canvas *Canvas
	input  *InputSystem
}

// NewGameScene creates a scene driving session.
func NewGameScene(session *game.Session) *GameScene {
	return &GameScene{
		session: session,
		stepper: game.NewStepper(session.TickDuration()),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "SpacemanScene"
}

// Preload registers the bundled font (required by Engo)
func (scene *GameScene) Preload() {
	if err := LoadFont(); err != nil {
		scene.session.Logger.Error(context.Background(), "font preload failed", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.session.Logger.Warn(context.Background(), "engo updater is not an ecs world")
		return
	}
	scene.world = world
	common.SetBackground(color.Black)
	SetupInputBindings()

	settings := scene.session.Settings
	renderSystem := &common.RenderSystem{}
	scene.canvas = NewCanvas(renderSystem, settings.Width(), settings.Height(), NewAssetManager(nil, GoFont), scene.session.Logger)
	scene.input = NewInputSystem(scene.session.Controls, settings.Height(), engo.Exit)

	world.AddSystem(&frameSystem{scene: scene})
	world.AddSystem(renderSystem)
}

// Frame steps the session for dt seconds of wall time and redraws it.
func (scene *GameScene) Frame(dt float32) {
	if scene.input != nil {
		scene.input.Poll()
	}
	game.RunSteps(scene.session, scene.stepper, time.Duration(float64(dt)*float64(time.Second)))
	scene.canvas.Begin()
	scene.session.Draw(scene.canvas)
	scene.canvas.End()
}

// Exit closes the session (required by Engo)
func (scene *GameScene) Exit() {
	ctx, cancel := context.WithTimeout(context.Background(), scene.session.Settings.Resources.ShutdownTimeout)
	defer cancel()
	if err := scene.session.Close(ctx); err != nil {
		scene.session.Logger.Error(ctx, "session close failed", err)
	}
	if scene.canvas != nil {
		scene.canvas.Close()
	}
}

// frameSystem runs GameScene.Frame once per engo update.
type frameSystem struct {
	scene *GameScene
}

func (fs *frameSystem) Update(dt float32) { fs.scene.Frame(dt) }

func (fs *frameSystem) Remove(ecs.BasicEntity) {}

// Run opens a window and blocks until it closes.
func Run(session *game.Session) {
	settings := session.Settings
	engo.Run(engo.RunOptions{
		Title:      settings.Title,
		Width:      settings.Width(),
		Height:     settings.Height(),
		Fullscreen: settings.Fullscreen,
		VSync:      true,
		FPSLimit:   settings.TicksPerSecond,
	}, NewGameScene(session))
}
