package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strconv"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/voxelwalk/settings"
	"golang.org/x/image/font/basicfont"
)

var (
	panelTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelDimColor  = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// settingsPanel is an ebitenui side panel generated from the settings
// schema. Escape shows and hides it.
type settingsPanel struct {
	ui    *ebitenui.UI
	store *settings.Store

	panel *widget.Container
	body  *widget.Container

	face    ebtext.Face
	btnImg  *widget.ButtonImage
	btnText *widget.ButtonTextColor

	domain  settings.Domain
	labels  []func()
	cancel  []func()
	visible bool
}

func newSettingsPanel(store *settings.Store) *settingsPanel {
	p := &settingsPanel{
		store:   store,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
		btnText: &widget.ButtonTextColor{Idle: panelTextColor},
		domain:  settings.Domains[0],
	}
	idle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	pressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff})
	p.btnImg = &widget.ButtonImage{Idle: idle, Pressed: pressed}

	tabs := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(4),
			widget.GridLayoutOpts.Spacing(4, 4),
		)),
	)
	for _, d := range settings.Domains {
		tabs.AddChild(p.button(string(d), func() { p.show(d) }))
	}

	p.body = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	p.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	p.panel.AddChild(tabs)
	p.panel.AddChild(p.body)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(p.panel)
	p.ui = &ebitenui.UI{Container: root}

	for _, d := range settings.Domains {
		cancel, err := store.Subscribe(d, func(settings.Settings) { p.refresh() })
		if err != nil {
			log.Printf("panel: subscribe %s: %v", d, err)
			continue
		}
		p.cancel = append(p.cancel, cancel)
	}
	p.cancel = append(p.cancel, store.OnSelectionChanged(func(settings.SelectionEvent) {
		if p.domain == settings.DomainVoxels {
			p.show(settings.DomainVoxels)
		}
	}))

	p.show(p.domain)
	return p
}

func (p *settingsPanel) Toggle() {
	p.visible = !p.visible
}

// Hovered reports whether the cursor is over the visible panel.
func (p *settingsPanel) Hovered() bool {
	if !p.visible {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(p.panel.GetWidget().Rect)
}

func (p *settingsPanel) Update() {
	if p.visible {
		p.ui.Update()
	}
}

func (p *settingsPanel) Draw(screen *ebiten.Image) {
	if p.visible {
		p.ui.Draw(screen)
	}
}

func (p *settingsPanel) Close() {
	for _, cancel := range p.cancel {
		cancel()
	}
	p.cancel = nil
}

// show rebuilds the body for d.
func (p *settingsPanel) show(d settings.Domain) {
	p.domain = d
	p.labels = nil
	p.body.RemoveChildren()

	p.body.AddChild(p.text(string(d), panelTextColor))
	for _, f := range settings.Schema(d) {
		p.body.AddChild(p.fieldRow(d, f))
	}
	if d == settings.DomainVoxels {
		p.addVoxelList()
	}
	p.refresh()
}

func (p *settingsPanel) refresh() {
	for _, update := range p.labels {
		update()
	}
}

func (p *settingsPanel) fieldRow(d settings.Domain, f settings.Field) widget.PreferredSizeLocateableWidget {
	switch f.Kind {
	case settings.FieldAction:
		return p.button(f.Label, func() { p.report(p.store.Apply(d, f.Key)) })
	case settings.FieldToggle:
		btn := p.button(f.Label, func() { p.report(p.store.Toggle(d, f.Key)) })
		p.bindButton(btn, d, f)
		return btn
	case settings.FieldEnum:
		btn := p.button(f.Label, func() { p.report(p.store.Cycle(d, f.Key)) })
		p.bindButton(btn, d, f)
		return btn
	case settings.FieldRange:
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			)),
		)
		row.AddChild(p.button("-", func() { p.report(p.store.Step(d, f.Key, -1)) }))
		row.AddChild(p.button("+", func() { p.report(p.store.Step(d, f.Key, 1)) }))
		label := p.text(f.Label, panelTextColor)
		p.bindText(label, d, f)
		row.AddChild(label)
		return row
	default:
		// Colors and text are edited through the settings file.
		label := p.text(f.Label, panelDimColor)
		p.bindText(label, d, f)
		return label
	}
}

func (p *settingsPanel) addVoxelList() {
	snap := p.store.Snapshot().Voxels
	for _, v := range snap.Items {
		id := v.ID
		label := fmt.Sprintf("%s (%.1f, %.1f, %.1f)", id, v.Position.X(), v.Position.Y(), v.Position.Z())
		if id == snap.Selected {
			label = "> " + label
		}
		p.body.AddChild(p.button(label, func() {
			if id == p.store.Snapshot().Voxels.Selected {
				p.store.DeselectVoxel()
				return
			}
			p.report(p.store.SelectVoxel(id))
		}))
	}
}

func (p *settingsPanel) bindButton(btn *widget.Button, d settings.Domain, f settings.Field) {
	p.labels = append(p.labels, func() {
		if text := btn.Text(); text != nil {
			text.Label = p.fieldLabel(d, f)
		}
	})
}

func (p *settingsPanel) bindText(t *widget.Text, d settings.Domain, f settings.Field) {
	p.labels = append(p.labels, func() {
		t.Label = p.fieldLabel(d, f)
	})
}

func (p *settingsPanel) fieldLabel(d settings.Domain, f settings.Field) string {
	v, err := p.store.Value(d, f.Key)
	if err != nil {
		return f.Label
	}
	switch val := v.(type) {
	case bool:
		if val {
			return f.Label + ": On"
		}
		return f.Label + ": Off"
	case float64:
		return f.Label + ": " + strconv.FormatFloat(val, 'g', 4, 64)
	default:
		return fmt.Sprintf("%s: %v", f.Label, val)
	}
}

func (p *settingsPanel) report(err error) {
	if err != nil {
		log.Printf("panel: %v", err)
	}
}

func (p *settingsPanel) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.btnImg),
		widget.ButtonOpts.Text(label, &p.face, p.btnText),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (p *settingsPanel) text(label string, clr color.Color) *widget.Text {
	return widget.NewText(widget.TextOpts.Text(label, &p.face, clr))
}
