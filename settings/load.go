package settings

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/voxelwalk/prefabs"
	"gopkg.in/yaml.v3"
)

// Decode parses data on top of the defaults so a partial file only
// overrides the keys it names.
func Decode(data []byte) (Settings, error) {
	out := Defaults()
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Settings{}, fmt.Errorf("settings: decode: %w", err)
	}
	return out, nil
}

// Load reads the settings file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", path, err)
	}
	return s, nil
}

// Encode renders s as YAML.
func Encode(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("settings: marshal: %w", err)
	}
	return data, nil
}

// Save writes s to path as YAML.
func Save(path string, s Settings) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: save %s: %w", path, err)
	}
	return nil
}

// Reloader re-reads a settings file whenever it changes on disk and
// replaces the store contents with it. Poll must be called from the tick
// that owns the store.
type Reloader struct {
	path    string
	store   *Store
	watcher *prefabs.Watcher
}

func NewReloader(path string, store *Store) (*Reloader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("settings: watch %s: %w", path, err)
	}
	w, err := prefabs.NewWatcher(abs)
	if err != nil {
		return nil, fmt.Errorf("settings: watch %s: %w", path, err)
	}
	return &Reloader{path: abs, store: store, watcher: w}, nil
}

// Poll reloads the file if it changed since the last call and returns the
// domains that differ.
func (r *Reloader) Poll() []Domain {
	var changed []Domain
	for _, c := range r.watcher.Poll() {
		if c.Path != r.path {
			continue
		}
		next, err := Load(r.path)
		if err != nil {
			log.Printf("settings: reload: %v", err)
			continue
		}
		changed = append(changed, r.store.Replace(next)...)
	}
	return changed
}

func (r *Reloader) Close() error {
	return r.watcher.Close()
}
