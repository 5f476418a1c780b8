package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// spriteEntry is one sprite's record in the manifest: its region inside
// the atlas, its original (pre-trim) size, and the region within that
// original size it occupies if the sprite was trimmed.
type spriteEntry struct {
	Filename string `json:"filename"`
	Region   rect   `json:"region"`
	Source   rect   `json:"source"`
	Trimmed  bool   `json:"trimmed"`
	Rotated  bool   `json:"rotated"`
}

type rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type manifest struct {
	Meta struct {
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
	Atlas   string        `json:"atlas"`
	Size    rect          `json:"size"`
	Sprites []spriteEntry `json:"sprites"`
}

func writeManifest(path, version, atlasFile string, w, h int, placed []placedSprite) error {
	m := manifest{
		Atlas: atlasFile,
		Size:  rect{W: w, H: h},
	}
	m.Meta.Version = version
	m.Meta.Timestamp = time.Now().Format(time.RFC3339)

	for _, p := range placed {
		s, r := p.sprite, p.rect
		// The atlas holds the trimmed footprint rotated 90 degrees when
		// r.Rotated (see composeAtlas), so the recorded region must swap
		// width and height to match what was actually drawn.
		regionW, regionH := s.trim.Dx(), s.trim.Dy()
		if r.Rotated {
			regionW, regionH = regionH, regionW
		}
		entry := spriteEntry{
			Filename: filepath.Base(s.path),
			Region: rect{
				X: r.X + p.padding,
				Y: r.Y + p.padding,
				W: regionW,
				H: regionH,
			},
			Source: rect{
				X: s.trim.Min.X,
				Y: s.trim.Min.Y,
				W: s.srcW,
				H: s.srcH,
			},
			Trimmed: s.trim.Min.X != 0 || s.trim.Min.Y != 0 ||
				s.trim.Dx() != s.srcW || s.trim.Dy() != s.srcH,
			Rotated: r.Rotated,
		}
		m.Sprites = append(m.Sprites, entry)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
