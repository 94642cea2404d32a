package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/voxelwalk/settings"
	"golang.design/x/clipboard"
)

// settingsClipboard copies the settings as YAML with Ctrl+C and replaces
// them from the clipboard with Ctrl+V.
type settingsClipboard struct {
	store *settings.Store
	ready bool
}

func newSettingsClipboard(store *settings.Store) *settingsClipboard {
	c := &settingsClipboard{store: store}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: disabled: %v", err)
		return c
	}
	c.ready = true
	return c
}

func (c *settingsClipboard) Update() {
	if !c.ready {
		return
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if !ctrl {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		c.copy()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		c.paste()
	}
}

func (c *settingsClipboard) copy() {
	data, err := settings.Encode(c.store.Snapshot())
	if err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("clipboard: copied settings")
}

func (c *settingsClipboard) paste() {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	next, err := settings.Decode(data)
	if err != nil {
		log.Printf("clipboard: paste: %v", err)
		return
	}
	log.Printf("clipboard: pasted settings, changed %v", c.store.Replace(next))
}
