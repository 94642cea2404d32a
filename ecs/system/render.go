package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/settings"
	"golang.org/x/image/colornames"
)

// RenderPalette holds the colors of the debug view.
type RenderPalette struct {
	Background color.Color
	Avatar     color.Color
	Zone       color.Color
	Camera     color.Color
}

// DefaultPalette is used for every color a scene leaves unset.
var DefaultPalette = RenderPalette{
	Background: colornames.Black,
	Avatar:     colornames.Orange,
	Zone:       colornames.Dodgerblue,
	Camera:     colornames.White,
}

// RenderSystem draws a top-down view of the scene centered on the player:
// ground plane X right, Z down.
type RenderSystem struct {
	store         *settings.Store
	PixelsPerUnit float64
	Palette       RenderPalette
	// Physics, when set, is overlaid with the collision shapes.
	Physics *PhysicsSystem
}

func NewRenderSystem(store *settings.Store, pixelsPerUnit float64, palette RenderPalette) *RenderSystem {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 24
	}
	return &RenderSystem{store: store, PixelsPerUnit: pixelsPerUnit, Palette: palette}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	view := r.view(w, screen)
	cfg := settings.Defaults()
	if r.store != nil {
		cfg = r.store.Snapshot()
	}

	screen.Fill(r.Palette.Background)
	if cfg.Grid.Enabled {
		r.drawGrid(screen, view, cfg.Grid)
	}
	r.drawZones(w, screen, view)
	r.drawVoxels(w, screen, view)
	r.drawBroadcaster(w, screen, view, cfg.Broadcaster)
	r.drawAvatar(w, screen, view)
	r.drawCamera(w, screen, view)

	if r.Physics != nil {
		DrawPhysicsDebug(r.Physics.Space(), view, screen)
	}

	r.drawHUD(w, screen)
}

// topDownView maps ground-plane coordinates to screen pixels.
type topDownView struct {
	centerX, centerZ float64
	halfW, halfH     float64
	scale            float64
}

func (r *RenderSystem) view(w *ecs.World, screen *ebiten.Image) topDownView {
	b := screen.Bounds()
	v := topDownView{halfW: float64(b.Dx()) / 2, halfH: float64(b.Dy()) / 2, scale: r.PixelsPerUnit}
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			v.centerX, v.centerZ = t.Position.X(), t.Position.Z()
		}
	}
	return v
}

func (v topDownView) toScreen(x, z float64) (float32, float32) {
	return float32(v.halfW + (x-v.centerX)*v.scale), float32(v.halfH + (z-v.centerZ)*v.scale)
}

func (r *RenderSystem) drawGrid(screen *ebiten.Image, v topDownView, g settings.Grid) {
	cell := g.CellSize
	if cell <= 0 {
		return
	}
	clr := settings.MustColor(g.CellColor, color.NRGBA{R: 0x6f, G: 0x6f, B: 0x6f, A: 0xff})
	clr.A = 0x50
	section := settings.MustColor(g.SectionColor, color.NRGBA{R: 0x9d, G: 0x4b, B: 0x4b, A: 0xff})

	minX := v.centerX - v.halfW/v.scale
	maxX := v.centerX + v.halfW/v.scale
	minZ := v.centerZ - v.halfH/v.scale
	maxZ := v.centerZ + v.halfH/v.scale

	lineColor := func(at float64) color.Color {
		if g.SectionSize > 0 && math.Abs(math.Remainder(at, g.SectionSize)) < cell/2 {
			return section
		}
		return clr
	}

	for x := math.Floor(minX/cell) * cell; x <= maxX; x += cell {
		x0, y0 := v.toScreen(x, minZ)
		x1, y1 := v.toScreen(x, maxZ)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, lineColor(x), false)
	}
	for z := math.Floor(minZ/cell) * cell; z <= maxZ; z += cell {
		x0, y0 := v.toScreen(minX, z)
		x1, y1 := v.toScreen(maxX, z)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, lineColor(z), false)
	}
}

func (r *RenderSystem) drawZones(w *ecs.World, screen *ebiten.Image, v topDownView) {
	ecs.ForEach(w, component.ZoneComponent.Kind(), func(_ ecs.Entity, zone *component.Zone) {
		x, y := v.toScreen(zone.Center.X(), zone.Center.Z())
		width := float32(1)
		if zone.Inside {
			width = 3
		}
		vector.StrokeCircle(screen, x, y, float32(zone.Radius*v.scale), width, r.Palette.Zone, true)
		ebitenutil.DebugPrintAt(screen, zone.Name, int(x)+4, int(y)+4)
	})
}

func (r *RenderSystem) drawVoxels(w *ecs.World, screen *ebiten.Image, v topDownView) {
	ecs.ForEach3(w, component.VoxelComponent.Kind(), component.TransformComponent.Kind(), component.CharacterBodyComponent.Kind(),
		func(_ ecs.Entity, vx *component.Voxel, t *component.Transform, body *component.CharacterBody) {
			clr := settings.MustColor(vx.Color, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			x, y := v.toScreen(t.Position.X()-body.Width/2, t.Position.Z()-body.Depth/2)
			vector.FillRect(screen, x, y, float32(body.Width*v.scale), float32(body.Depth*v.scale), clr, false)
		})

	if r.store == nil {
		return
	}
	sel, ok := r.store.SelectedVoxel()
	if !ok {
		return
	}
	x, y := v.toScreen(sel.Position.X()-sel.Scale.X()/2, sel.Position.Z()-sel.Scale.Z()/2)
	vector.StrokeRect(screen, x, y, float32(sel.Scale.X()*v.scale), float32(sel.Scale.Z()*v.scale), 2, colornames.Yellow, false)
}

func (r *RenderSystem) drawBroadcaster(w *ecs.World, screen *ebiten.Image, v topDownView, cfg settings.Broadcaster) {
	ecs.ForEach2(w, component.BroadcasterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Broadcaster, t *component.Transform) {
		x, y := v.toScreen(t.Position.X(), t.Position.Z())
		clr := settings.MustColor(cfg.Color, color.NRGBA{R: 0xff, A: 0xff})
		size := float32(math.Max(t.Scale, 0.25) * v.scale / 2)
		vector.StrokeCircle(screen, x, y, size, 2, clr, true)
		vector.StrokeCircle(screen, x, y, float32(cfg.Distance*v.scale), 1, colornames.Dimgray, true)
		if b.OnAir {
			ebitenutil.DebugPrintAt(screen, "ON AIR", int(x)-18, int(y)-int(size)-16)
		}
	})
}

func (r *RenderSystem) drawAvatar(w *ecs.World, screen *ebiten.Image, v topDownView) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	width, depth := 1.0, 1.0
	if body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind()); ok {
		width, depth = body.Width, body.Depth
	}

	x, y := v.toScreen(t.Position.X()-width/2, t.Position.Z()-depth/2)
	vector.StrokeRect(screen, x, y, float32(width*v.scale), float32(depth*v.scale), 2, r.Palette.Avatar, false)

	facing := t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	cx, cy := v.toScreen(t.Position.X(), t.Position.Z())
	fx, fy := v.toScreen(t.Position.X()+facing.X(), t.Position.Z()+facing.Z())
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, r.Palette.Avatar, true)
}

func (r *RenderSystem) drawCamera(w *ecs.World, screen *ebiten.Image, v topDownView) {
	e, ok := ecs.First(w, component.OrbitCameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, e, component.OrbitCameraComponent.Kind())
	if !ok {
		return
	}
	px, py := v.toScreen(cam.Position.X(), cam.Position.Z())
	tx, ty := v.toScreen(cam.Target.X(), cam.Target.Z())
	vector.StrokeLine(screen, px, py, tx, ty, 1, r.Palette.Camera, true)
	vector.StrokeCircle(screen, px, py, 4, 1, r.Palette.Camera, true)
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	state, run, follow := "none", false, false
	if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok {
		state, run = string(loco.State), loco.ToggleRun
	}
	if camEntity, ok := ecs.First(w, component.CameraFollowComponent.Kind()); ok {
		if f, ok := ecs.Get(w, camEntity, component.CameraFollowComponent.Kind()); ok {
			follow = f.Enabled
		}
	}
	pressed := "none"
	if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		pressed = in.Pressed.String()
	}
	text := fmt.Sprintf("TPS: %.1f\nState: %s\nRun: %v\nFollow: %v\nKeys: %s", ebiten.ActualTPS(), state, run, follow, pressed)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
