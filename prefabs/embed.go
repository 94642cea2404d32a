package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ScriptDir is where zone scripts are read from before falling back to the
// embedded copies.
const ScriptDir = "prefabs/scripts"

//go:embed scripts/*.tengo
var scriptsFS embed.FS

//go:embed *.yaml
var prefabsFS embed.FS

// LoadScript reads a zone script by name. A file under ScriptDir shadows
// the embedded script of the same name.
func LoadScript(name string) ([]byte, error) {
	clean := ScriptName(name)
	if data, err := os.ReadFile(filepath.Join(ScriptDir, clean)); err == nil {
		return data, nil
	}
	return scriptsFS.ReadFile(path.Join("scripts", clean))
}

// Load reads a prefab or scene file, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return prefabsFS.ReadFile(clean)
}

func cleanPrefabPath(p string) string {
	s := filepath.ToSlash(p)
	s, _ = strings.CutPrefix(s, "prefabs/")
	return s
}

// ScriptName reduces any script reference to the bare name zones use, so
// "prefabs/scripts/a.tengo", "scripts/a.tengo" and "a.tengo" all match.
func ScriptName(p string) string {
	s := filepath.ToSlash(p)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s, _ = strings.CutPrefix(s, prefix)
	}
	return s
}
