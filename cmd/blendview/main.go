package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/voxelwalk/anim"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/ecs/entity"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 512
	screenHeight = 256
	historyLen   = 240
)

var stateKeys = map[ebiten.Key]anim.State{
	ebiten.Key1: anim.StateIdle,
	ebiten.Key2: anim.StateWalk,
	ebiten.Key3: anim.StateRun,
}

var stateColors = map[anim.State]color.Color{
	anim.StateIdle: colornames.Lightskyblue,
	anim.StateWalk: colornames.Limegreen,
	anim.StateRun:  colornames.Orangered,
}

// previewGame plays the blend layer of a prefab and plots each state's
// weight over the last few seconds.
type previewGame struct {
	anim    *component.Animation
	history map[anim.State][]float64
}

func (g *previewGame) Update() error {
	for key, s := range stateKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.anim.Layer.CrossfadeTo(s)
		}
	}
	g.anim.Mixer.Update(1.0 / float64(ebiten.TPS()))

	for _, s := range anim.States {
		w := 0.0
		if a := g.anim.Layer.Action(s); a != nil {
			w = a.Weight()
		}
		h := append(g.history[s], w)
		if len(h) > historyLen {
			h = h[len(h)-historyLen:]
		}
		g.history[s] = h
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	top, bottom := float32(40), float32(screenHeight-20)
	step := float32(screenWidth) / historyLen
	for _, s := range anim.States {
		h := g.history[s]
		for i := 1; i < len(h); i++ {
			y0 := bottom - float32(h[i-1])*(bottom-top)
			y1 := bottom - float32(h[i])*(bottom-top)
			vector.StrokeLine(screen, float32(i-1)*step, y0, float32(i)*step, y1, 2, stateColors[s], true)
		}
	}

	status := fmt.Sprintf("state %s  t=%.2fs  1/2/3 idle/walk/run", g.anim.Layer.Current(), g.anim.Mixer.Time())
	if a := g.anim.Layer.Playing(); a != nil {
		status += fmt.Sprintf("\nclip %s %.2f/%.2fs x%.1f", a.Clip().Name, a.Time(), a.Clip().Duration, a.TimeScale())
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	prefab := flag.String("prefab", "avatar.yaml", "prefab with an animation component")
	fade := flag.Float64("fade", 0, "override the crossfade duration in seconds")
	flag.Parse()

	w := ecs.NewWorld()
	e, err := entity.BuildEntity(w, *prefab)
	if err != nil {
		log.Fatal(err)
	}
	a, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		log.Fatalf("prefab %s has no animation component", *prefab)
	}
	if *fade > 0 {
		a.Layer.FadeDuration = *fade
	}

	g := &previewGame{anim: a, history: make(map[anim.State][]float64)}
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("Blend Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
