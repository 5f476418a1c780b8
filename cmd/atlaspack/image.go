package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"

	"edgepack/rectpack"
)

// sprite is one input PNG, decoded and (optionally) trimmed, before it has
// a position in the atlas.
type sprite struct {
	path   string
	img    image.Image
	srcW   int // original, untrimmed width
	srcH   int // original, untrimmed height
	trim   image.Rectangle
	packW  int // trim.Dx() + 2*padding
	packH  int // trim.Dy() + 2*padding
}

// getImageBBox returns the smallest rectangle containing every pixel whose
// alpha exceeds threshold. An image with no such pixel returns its full
// bounds unchanged.
func getImageBBox(img image.Image, threshold uint32) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return bounds
	}
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false

	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if uint32(src.Pix[i+3]) > threshold {
					found = true
					minX, minY = min(minX, x), min(minY, y)
					maxX, maxY = max(maxX, x), max(maxY, y)
				}
				i += 4
			}
		}
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if uint32(src.Pix[i+3]) > threshold {
					found = true
					minX, minY = min(minX, x), min(minY, y)
					maxX, maxY = max(maxX, x), max(maxY, y)
				}
				i += 4
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a>>8 > threshold {
					found = true
					minX, minY = min(minX, x), min(minY, y)
					maxX, maxY = max(maxX, x), max(maxY, y)
				}
			}
		}
	}
	if !found {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// readSpriteDir globs *.png under dir, optionally ordering them with
// natural (human) sort so atlas output is stable and diffable across runs.
func readSpriteDir(dir string, naturalSort bool) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("input directory %s: %w", dir, err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	if naturalSort {
		sort.Sort(natural.StringSlice(paths))
	}
	return paths, nil
}

// loadSprites decodes every path, optionally trims fully transparent
// borders, and pads the trimmed footprint that will be fed to the packer.
func loadSprites(paths []string, trim bool, threshold uint32, padding int) ([]*sprite, error) {
	sprites := make([]*sprite, len(paths))
	errs := make([]error, len(paths))

	numWorkers := runtime.NumCPU()
	var wg sync.WaitGroup
	sem := make(chan struct{}, numWorkers)
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			f, err := os.Open(path)
			if err != nil {
				errs[i] = err
				return
			}
			img, err := imaging.Decode(f)
			f.Close()
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return
			}

			bounds := img.Bounds()
			s := &sprite{path: path, img: img, srcW: bounds.Dx(), srcH: bounds.Dy()}
			if trim {
				s.trim = getImageBBox(img, threshold)
			} else {
				s.trim = bounds
			}
			s.packW = s.trim.Dx() + 2*padding
			s.packH = s.trim.Dy() + 2*padding
			sprites[i] = s
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sprites, nil
}

// placedSprite pairs a decoded sprite with the footprint the packer gave
// it, ready for composition and manifest output.
type placedSprite struct {
	sprite  *sprite
	rect    *rectpack.Rect
	padding int
}

// composeAtlas draws every packed sprite into a single NRGBA image sized to
// the packer's current bounding box, padding its trimmed footprint back to
// the padded rectangle the packer placed.
func composeAtlas(p *rectpack.Packer, sprites []*sprite, rects []*rectpack.Rect, padding int) (*image.NRGBA, []placedSprite, error) {
	w, h := p.Bounds()
	if w == 0 || h == 0 {
		w, h = 1, 1
	}
	atlas := imaging.New(w, h, color.NRGBA{})

	var placed []placedSprite
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, r := range rects {
		if !r.Packed {
			continue
		}
		wg.Add(1)
		go func(i int, r *rectpack.Rect) {
			defer wg.Done()
			s := sprites[i]
			src := s.img
			trimBounds := s.trim
			if r.Rotated {
				src = imaging.Rotate90(src)
				trimBounds = rotateRectCCW(trimBounds, s.srcW, s.srcH)
			}

			dstX := r.X + padding
			dstY := r.Y + padding
			dstRect := image.Rect(dstX, dstY, dstX+trimBounds.Dx(), dstY+trimBounds.Dy())

			mu.Lock()
			draw.Draw(atlas, dstRect, src, trimBounds.Min, draw.Src)
			placed = append(placed, placedSprite{sprite: s, rect: r, padding: padding})
			mu.Unlock()
		}(i, r)
	}
	wg.Wait()

	sort.Slice(placed, func(i, j int) bool {
		return placed[i].sprite.path < placed[j].sprite.path
	})
	return atlas, placed, nil
}

// rotateRectCCW maps a rectangle's coordinates from an image's original
// orientation into the frame of that image after a 90-degree
// counter-clockwise rotation, mirroring imaging.Rotate90's pixel mapping.
func rotateRectCCW(r image.Rectangle, origW, origH int) image.Rectangle {
	minX := r.Min.Y
	minY := origW - r.Max.X
	return image.Rect(minX, minY, minX+r.Dy(), minY+r.Dx())
}
