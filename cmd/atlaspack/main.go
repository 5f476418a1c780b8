// Command atlaspack packs a directory of PNG sprites into a single atlas
// image plus a JSON manifest, using rectpack's contact-perimeter packer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"edgepack/rectpack"
)

const version = "0.1.0"

type options struct {
	inputDir      string
	outputDir     string
	width         int
	height        int
	padding       int
	allowRotate   bool
	trim          bool
	threshold     uint32
	sortFiles     bool
	open          bool
	unpackPath    string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.unpackPath, "unpack", "", "path to an atlas manifest to unpack instead of packing")
	flag.StringVar(&o.inputDir, "input", "input", "directory of PNG sprites to pack")
	flag.StringVar(&o.outputDir, "output", "output", "directory to write atlas.png and atlas.json")
	flag.IntVar(&o.width, "width", 512, "starting atlas width")
	flag.IntVar(&o.height, "height", 512, "starting atlas height")
	flag.IntVar(&o.padding, "padding", 0, "pixels of transparent padding added to each sprite's footprint")
	flag.BoolVar(&o.allowRotate, "rotate", true, "allow 90-degree rotation when it improves contact")
	flag.BoolVar(&o.trim, "trim", true, "trim fully transparent borders before packing")
	threshold := flag.Uint("threshold", 0, "alpha value at or below which a pixel counts as transparent")
	flag.BoolVar(&o.sortFiles, "sort", true, "order sprites by natural filename order before packing")
	flag.BoolVar(&o.open, "open", false, "pack against an open canvas (no right/top wall contact)")
	flag.Parse()
	o.threshold = uint32(*threshold)
	return o
}

func main() {
	opts := parseFlags()

	if opts.unpackPath != "" {
		if err := unpack(opts.unpackPath, opts.outputDir); err != nil {
			fmt.Fprintln(os.Stderr, "unpack:", err)
			os.Exit(1)
		}
		return
	}

	start := time.Now()

	paths, err := readSpriteDir(opts.inputDir, opts.sortFiles)
	if err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "atlaspack: no PNG files found in %s\n", opts.inputDir)
		os.Exit(1)
	}

	sprites, err := loadSprites(paths, opts.trim, opts.threshold, opts.padding)
	if err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}
	fmt.Printf("loaded %d sprites from %s\n", len(sprites), opts.inputDir)

	packer, err := rectpack.NewPacker(opts.width, opts.height, opts.open)
	if err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}

	rects := make([]*rectpack.Rect, len(sprites))
	for i, s := range sprites {
		rects[i] = rectpack.NewRect(s.packW, s.packH)
	}

	packAll(packer, rects, opts.allowRotate, opts.width, opts.height)

	atlasImg, placed, err := composeAtlas(packer, sprites, rects, opts.padding)
	if err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}

	atlasPath := filepath.Join(opts.outputDir, "atlas.png")
	out, err := os.Create(atlasPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}
	if err := imaging.Encode(out, atlasImg, imaging.PNG); err != nil {
		out.Close()
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}
	out.Close()

	w, h := packer.Bounds()
	used, capacity := packer.Area()
	manifestPath := filepath.Join(opts.outputDir, "atlas.json")
	if err := writeManifest(manifestPath, version, "atlas.png", w, h, placed); err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}

	fmt.Printf("packed %d/%d sprites into %dx%d (%.1f%% used)\n",
		len(placed), len(sprites), w, h, 100*float64(used)/float64(capacity))
	fmt.Printf("wrote %s and %s in %s\n", atlasPath, manifestPath, time.Since(start))
}

// packAll runs the batch pack, then doubles the canvas and retries for
// whatever did not fit the first time around. Unlike the teacher's
// multi-atlas overflow, there is only ever one atlas: this keeps enlarging
// until everything fits.
func packAll(p *rectpack.Packer, rects []*rectpack.Rect, allowRotate bool, w, h int) {
	for {
		p.PackBatch(rects, allowRotate)

		var remaining int
		for _, r := range rects {
			if !r.Packed {
				remaining++
			}
		}
		if remaining == 0 {
			return
		}

		// Grow the shorter axis first so the canvas does not drift into an
		// extreme aspect ratio over repeated retries.
		if w <= h {
			w *= 2
		} else {
			h *= 2
		}
		p.Enlarge(w, h)
	}
}
