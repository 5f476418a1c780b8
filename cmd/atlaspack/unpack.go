package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// unpack reads a manifest produced by this tool and writes each sprite
// back out as its own PNG, restoring any padding/trim it had before it was
// packed into the atlas.
func unpack(manifestPath, outputDir string) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	atlasPath := filepath.Join(filepath.Dir(manifestPath), m.Atlas)
	f, err := os.Open(atlasPath)
	if err != nil {
		return fmt.Errorf("open atlas: %w", err)
	}
	atlasImg, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode atlas: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, s := range m.Sprites {
		sub := imaging.New(s.Region.W, s.Region.H, color.NRGBA{})
		draw.Draw(sub, sub.Bounds(), atlasImg, image.Pt(s.Region.X, s.Region.Y), draw.Src)

		if s.Rotated {
			sub = imaging.Rotate270(sub)
		}

		out := sub
		if s.Trimmed {
			full := image.NewNRGBA(image.Rect(0, 0, s.Source.W, s.Source.H))
			draw.Draw(full, image.Rect(s.Source.X, s.Source.Y, s.Source.X+sub.Bounds().Dx(), s.Source.Y+sub.Bounds().Dy()),
				sub, image.Point{}, draw.Src)
			out = full
		}

		outPath := filepath.Join(outputDir, s.Filename)
		outFile, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		if err := imaging.Encode(outFile, out, imaging.PNG); err != nil {
			outFile.Close()
			return fmt.Errorf("encode %s: %w", outPath, err)
		}
		outFile.Close()
	}

	fmt.Printf("unpacked %d sprites to %s\n", len(m.Sprites), outputDir)
	return nil
}
