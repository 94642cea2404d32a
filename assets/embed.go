package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.wav
var assetsFS embed.FS

// SampleRate is the rate every decoded stream is resampled to.
const SampleRate = 44100

// DefaultTrack is the embedded broadcaster loop.
const DefaultTrack = "broadcast.wav"

// AudioContext returns the process audio context, creating it on first use.
func AudioContext() *audio.Context {
	if c := audio.CurrentContext(); c != nil {
		return c
	}
	return audio.NewContext(SampleRate)
}

// LoadFile reads path from disk, falling back to the embedded assets.
func LoadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadLoopingPlayer decodes a wav or ogg file and returns a player that
// loops it forever.
func LoadLoopingPlayer(ctx *audio.Context, path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", path, err)
	}

	stream, length, err := decode(ctx.SampleRate(), path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("assets: player %q: %w", path, err)
	}
	return player, nil
}

func decode(sampleRate int, path string, r io.ReadSeeker) (io.ReadSeeker, int64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, 0, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		return s, s.Length(), nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, 0, fmt.Errorf("assets: decode ogg %q: %w", path, err)
		}
		return s, s.Length(), nil
	}
	return nil, 0, fmt.Errorf("assets: unsupported audio format %q", path)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
