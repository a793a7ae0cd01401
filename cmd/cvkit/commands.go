package main

import (
	"flag"
	"image"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/nvr-ai/go-cvkit/bbox"
	"github.com/nvr-ai/go-cvkit/config"
	"github.com/nvr-ai/go-cvkit/images"
	"github.com/nvr-ai/go-cvkit/lists"
	"github.com/nvr-ai/go-cvkit/tensors"
	"github.com/nvr-ai/go-cvkit/util"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

func runList(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	dir := fs.String("dir", "", "Root directory to walk")
	exts := fs.String("ext", "", "Comma separated extensions to keep (overrides config)")
	out := fs.String("out", "", "Dump file (.txt, .gob, .yaml); prints to stdout when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return errors.New("-dir is required")
	}

	allowed := cfg.Listing.Extensions
	if *exts != "" {
		allowed = parseExtensions(*exts)
	}

	files, err := util.GetFileListRecursively(*dir, allowed)
	if err != nil {
		return err
	}

	if *out == "" {
		for _, f := range files {
			os.Stdout.WriteString(f + "\n")
		}
		return nil
	}
	if err := lists.DumpList(files, *out); err != nil {
		return err
	}
	log.Printf("✅ Found %d files under %s, dumped to %s", len(files), *dir, *out)
	return nil
}

func runSplit(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	in := fs.String("in", "", "List dump to split")
	outDir := fs.String("out", "", "Output directory for the chunks")
	maxElements := fs.Int("max", cfg.Split.MaxElements, "Maximum elements per chunk")
	shuffle := fs.Bool("shuffle", cfg.Split.Shuffle, "Shuffle before splitting")
	seed := fs.Int64("seed", cfg.Split.Seed, "Shuffle seed, 0 seeds from the clock")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *outDir == "" {
		return errors.New("-in and -out are required")
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	_, err := lists.SplitListIntoPieces(*in, *maxElements, *outDir, *shuffle, rand.New(rand.NewSource(s)))
	return err
}

func runStitch(cfg config.Config, args []string) error {
	opts := cfg.Stitch
	fs := flag.NewFlagSet("stitch", flag.ContinueOnError)
	in := fs.String("in", "", "Directory of images or a list dump")
	out := fs.String("out", "stitch.png", "Output image")
	fs.IntVar(&opts.Rows, "rows", opts.Rows, "Grid rows")
	fs.IntVar(&opts.Cols, "cols", opts.Cols, "Grid columns")
	fs.IntVar(&opts.OffsetX, "off-x", opts.OffsetX, "Horizontal gap, -1 for 10% of the width")
	fs.IntVar(&opts.OffsetY, "off-y", opts.OffsetY, "Vertical gap, -1 for 10% of the height")
	fs.IntVar(&opts.Resize.Height, "height", opts.Resize.Height, "Resize the stitch to this height")
	fs.IntVar(&opts.Resize.Width, "width", opts.Resize.Width, "Resize the stitch to this width")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	paths, err := inputPaths(*in, cfg.Listing.Extensions)
	if err != nil {
		return err
	}
	files, err := util.LoadImageFiles(paths)
	if err != nil {
		return err
	}

	imgs := make([]image.Image, 0, len(files))
	for _, f := range files {
		format, err := images.FormatFromPath(f.Path)
		if err != nil {
			return err
		}
		img, err := (&images.Image{Format: format, Data: f.Data}).Decode()
		if err != nil {
			return errors.Wrap(err, f.Path)
		}
		imgs = append(imgs, img)
	}

	stitch, err := images.StitchTogether(imgs, opts)
	if err != nil {
		return err
	}
	if err := images.WriteImage(*out, stitch); err != nil {
		return err
	}
	log.Printf("✅ Stitched %d images into %s (%dx%d)", len(imgs), *out, stitch.Bounds().Dx(), stitch.Bounds().Dy())
	return nil
}

func runMask(_ config.Config, args []string) error {
	fs := flag.NewFlagSet("mask", flag.ContinueOnError)
	box := fs.String("box", "", "Rectangle as xMin,yMin,xMax,yMax")
	height := fs.Int("height", 0, "Mask height")
	width := fs.Int("width", 0, "Mask width")
	out := fs.String("out", "mask.png", "Output image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rect, err := parseBox(*box)
	if err != nil {
		return err
	}
	mask, err := rect.BinaryMask(*height, *width)
	if err != nil {
		return err
	}
	if err := images.WriteImage(*out, mask); err != nil {
		return err
	}
	log.Printf("✅ Wrote %dx%d mask of %s to %s, checksum %s", *height, *width, rect, *out, images.ComputeGrayChecksum(mask))
	return nil
}

func runDraw(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	in := fs.String("in", "", "Input image")
	box := fs.String("box", "", "Rectangle as xMin,yMin,xMax,yMax")
	ratio := fs.Float64("ratio", 1, "Resize ratio applied to the rectangle sides")
	out := fs.String("out", "draw.png", "Output image")
	fs.StringVar(&cfg.Draw.Color, "color", cfg.Draw.Color, "CSS color")
	fs.IntVar(&cfg.Draw.Thickness, "thickness", cfg.Draw.Thickness, "Outline thickness, -1 to fill")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ratio <= 0 {
		return errors.Errorf("ratio must be positive, got %v", *ratio)
	}

	c, err := cfg.Draw.RGBA()
	if err != nil {
		return err
	}
	rect, err := parseBox(*box)
	if err != nil {
		return err
	}
	src, err := images.LoadImage(*in)
	if err != nil {
		return err
	}

	b := src.Bounds()
	frame := image.NewRGBA(b)
	draw.Draw(frame, b, src, b.Min, draw.Src)

	resized := rect.ResizeSidesWithin(*ratio, bbox.Bounds{XMin: b.Min.X, YMin: b.Min.Y, XMax: b.Max.X, YMax: b.Max.Y})
	resized.Draw(frame, c, cfg.Draw.Thickness)

	if err := images.WriteImage(*out, frame); err != nil {
		return err
	}
	log.Printf("✅ Drew %s (from %s, ratio %.2f) on %s", resized, rect, *ratio, *out)
	return nil
}

func runCrop(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("crop", flag.ContinueOnError)
	in := fs.String("in", "", "Input image")
	box := fs.String("box", "", "Region as xMin,yMin,xMax,yMax")
	height := fs.Int("height", 0, "Resize the crop to this height")
	width := fs.Int("width", 0, "Resize the crop to this width")
	out := fs.String("out", "crop.png", "Output image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rect, err := parseBox(*box)
	if err != nil {
		return err
	}

	opts := cfg.Read
	opts.Color = true
	opts.ChannelsFirst = true
	t, err := images.ReadImage(*in, opts)
	if err != nil {
		return err
	}

	cropped, err := tensors.CropTensor(t, rect.YMin(), rect.YMax(), rect.XMin(), rect.XMax())
	if err != nil {
		return err
	}
	if *height > 0 || *width > 0 {
		if cropped, err = tensors.ResizeTensor(cropped, *height, *width); err != nil {
			return err
		}
	}

	img, err := images.TensorToImage(cropped, true)
	if err != nil {
		return err
	}
	if err := images.WriteImage(*out, img); err != nil {
		return err
	}
	log.Printf("📋 Cropped %s from %s to %v", rect, *in, cropped.Shape())
	return nil
}

// inputPaths lists images under a directory, or loads them from a list dump.
func inputPaths(in string, exts []string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, errors.Wrapf(err, "input %q", in)
	}
	if info.IsDir() {
		return util.GetFileListRecursively(in, exts)
	}

	paths, err := lists.LoadList(in)
	if err != nil {
		return nil, err
	}
	paths = slices.DeleteFunc(paths, func(p string) bool { return p == "" })

	// Relative entries are resolved against the dump's directory.
	base := filepath.Dir(in)
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			paths[i] = filepath.Join(base, p)
		}
	}
	return paths, nil
}
