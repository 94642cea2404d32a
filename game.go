package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/voxelwalk/assets"
	"github.com/milk9111/voxelwalk/audio"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/entity"
	"github.com/milk9111/voxelwalk/ecs/system"
	"github.com/milk9111/voxelwalk/prefabs"
	"github.com/milk9111/voxelwalk/settings"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Config is the host configuration taken from the command line.
type Config struct {
	SettingsPath string
	Watch        bool
	Debug        bool
}

type Game struct {
	world    *ecs.World
	store    *settings.Store
	reloader *settings.Reloader
	scripts  *prefabs.Watcher
	scene    *entity.Scene

	input     *system.InputSystem
	voxels    *system.VoxelSystem
	proximity *system.ProximitySystem
	render    *system.RenderSystem
	panel     *settingsPanel
	clip      *settingsClipboard

	settingsPath string
	debug        bool
}

func NewGame(cfg Config) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, fmt.Errorf("game: scene: %w", err)
	}

	initial, err := loadSettings(cfg.SettingsPath, spec.Settings)
	if err != nil {
		return nil, fmt.Errorf("game: settings: %w", err)
	}
	store := settings.NewStore(initial)

	w := ecs.NewWorld()
	w.SetDeltaTime(1.0 / float64(ebiten.TPS()))

	scene, err := entity.BuildScene(w, spec)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		world:        w,
		store:        store,
		scene:        scene,
		settingsPath: cfg.SettingsPath,
		debug:        cfg.Debug,
	}
	g.panel = newSettingsPanel(store)
	g.clip = newSettingsClipboard(store)

	locomotion := system.NewLocomotionSystem()
	avatar := locomotion.PositionRef(w)
	physics := system.NewPhysicsSystem()

	g.input = system.NewInputSystem(newEbitenSource(g.panel.Hovered))
	g.voxels = system.NewVoxelSystem(store)
	g.render = system.NewRenderSystem(store, spec.Debug.PixelsPerUnit, system.RenderPalette{
		Background: spec.Debug.Background.Or(system.DefaultPalette.Background),
		Avatar:     spec.Debug.Avatar.Or(system.DefaultPalette.Avatar),
		Zone:       spec.Debug.Zone.Or(system.DefaultPalette.Zone),
		Camera:     spec.Debug.Camera.Or(system.DefaultPalette.Camera),
	})
	if cfg.Debug {
		g.render.Physics = physics
	}

	// Voxels run first so their static bodies exist before the avatar moves.
	w.AddSystem(g.voxels)
	w.AddSystem(g.input)
	w.AddSystem(locomotion)
	w.AddSystem(physics)
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewBroadcasterSystem(store, avatar, loadTrack))
	g.proximity = system.NewProximitySystem(avatar, store)
	w.AddSystem(g.proximity)
	if cfg.Debug {
		w.AddSystem(eventLogSystem{})
	}
	w.AddSystem(g.render)

	if cfg.Watch {
		if cfg.SettingsPath == "" {
			log.Printf("game: -watch needs -settings, hot reload disabled")
		} else if r, err := settings.NewReloader(cfg.SettingsPath, store); err != nil {
			log.Printf("game: settings watcher disabled: %v", err)
		} else {
			g.reloader = r
		}
		if sw, err := prefabs.NewWatcher(prefabs.ScriptDir); err != nil {
			log.Printf("game: script watcher disabled: %v", err)
		} else {
			g.scripts = sw
		}
	}

	return g, nil
}

// loadSettings reads path when given, otherwise the embedded prefab.
func loadSettings(path, prefab string) (settings.Settings, error) {
	if path != "" {
		st, err := settings.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("settings: %s not found, using defaults", path)
			return settings.Defaults(), nil
		}
		return st, err
	}
	if prefab == "" {
		return settings.Defaults(), nil
	}
	data, err := prefabs.Load(prefab)
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Decode(data)
}

// loadTrack opens a looping broadcaster track. An empty url plays the
// embedded default.
func loadTrack(url string) (audio.Player, error) {
	if url == "" {
		url = assets.DefaultTrack
	}
	p, err := assets.LoadLoopingPlayer(assets.AudioContext(), url)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Game) Update() error {
	if g.reloader != nil {
		if changed := g.reloader.Poll(); len(changed) > 0 && g.debug {
			log.Printf("settings: reloaded %v", changed)
		}
	}
	if g.scripts != nil {
		for _, c := range g.scripts.Poll() {
			if c.Kind == prefabs.ChangeScript {
				log.Printf("zones: reloading %s", filepath.Base(c.Path))
				g.proximity.Invalidate(filepath.Base(c.Path))
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.panel.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && g.settingsPath != "" {
		if err := settings.Save(g.settingsPath, g.store.Snapshot()); err != nil {
			log.Printf("settings: save: %v", err)
		} else {
			log.Printf("settings: saved %s", g.settingsPath)
		}
	}
	g.clip.Update()
	g.panel.Update()

	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	g.panel.Draw(screen)
}

// Close releases the watcher and the store subscriptions.
func (g *Game) Close() {
	g.input.Detach()
	if g.reloader != nil {
		if err := g.reloader.Close(); err != nil {
			log.Printf("settings: close watcher: %v", err)
		}
	}
	if g.scripts != nil {
		if err := g.scripts.Close(); err != nil {
			log.Printf("zones: close watcher: %v", err)
		}
	}
	g.voxels.Close()
	g.panel.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// eventLogSystem prints the tick's events before the queue is flushed.
type eventLogSystem struct{}

func (eventLogSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		switch data := evt.Data.(type) {
		case ecs.AnimationStateEvent:
			log.Printf("event: %s %s -> %s", evt.Type, data.From, data.To)
		case ecs.ZoneEvent:
			log.Printf("event: %s zone=%v entered=%v", evt.Type, data.Zone, data.Entered)
		default:
			log.Printf("event: %s %v", evt.Type, data)
		}
	}
}
