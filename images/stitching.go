package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// DefaultOffset selects an offset of 10% of the cell size on that axis.
const DefaultOffset = -1

// StitchOptions describes the grid used by StitchTogether.
type StitchOptions struct {
	// Rows and Cols define the grid layout.
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
	// OffsetX and OffsetY are the gaps between cells and around the border.
	// DefaultOffset (or any negative value) selects 10% of the cell size.
	OffsetX int `json:"offset_x" yaml:"offset_x"`
	OffsetY int `json:"offset_y" yaml:"offset_y"`
	// Resize, when non-zero, resizes the final stitch.
	Resize Size `json:"resize" yaml:"resize"`
}

// DefaultStitchOptions returns a rows x cols layout with default offsets.
func DefaultStitchOptions(rows, cols int) StitchOptions {
	return StitchOptions{Rows: rows, Cols: cols, OffsetX: DefaultOffset, OffsetY: DefaultOffset}
}

// StitchTogether places images into a grid on a black canvas.
//
// All images must share the same size and be either all grayscale or all
// color. The canvas is rows*h + (rows+1)*offY high and cols*w + (cols+1)*offX
// wide. Images are placed row by row; images beyond rows*cols are ignored and
// missing cells stay black.
//
// Arguments:
//   - imgs: The images to stitch.
//   - opts: The grid layout, offsets and optional final resize.
//
// Returns:
//   - image.Image: *image.Gray for grayscale inputs, *image.RGBA otherwise.
//   - error: An error if imgs is empty, sizes differ, or the layout is invalid.
//
// @example
//
//	stitch, err := StitchTogether(frames, DefaultStitchOptions(5, 5))
func StitchTogether(imgs []image.Image, opts StitchOptions) (image.Image, error) {
	if len(imgs) == 0 {
		return nil, errors.New("no images to stitch")
	}
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil, errors.Errorf("invalid layout %dx%d", opts.Rows, opts.Cols)
	}

	if imgs[0] == nil {
		return nil, errors.New("image 0 is nil")
	}
	size := imgs[0].Bounds().Size()
	gray := isGray(imgs[0])
	for i, img := range imgs {
		if img == nil {
			return nil, errors.Errorf("image %d is nil", i)
		}
		if img.Bounds().Size() != size {
			return nil, errors.Errorf("all images must have the same shape: image %d is %v, want %v",
				i, img.Bounds().Size(), size)
		}
		if isGray(img) != gray {
			return nil, errors.Errorf("all images must have the same shape: image %d mixes color and grayscale", i)
		}
	}

	offX, offY := opts.OffsetX, opts.OffsetY
	if offX < 0 {
		offX = size.X / 10
	}
	if offY < 0 {
		offY = size.Y / 10
	}

	canvas := image.Rect(0, 0,
		opts.Cols*size.X+(opts.Cols+1)*offX,
		opts.Rows*size.Y+(opts.Rows+1)*offY,
	)
	var stitch draw.Image
	if gray {
		stitch = image.NewGray(canvas)
	} else {
		stitch = image.NewRGBA(canvas)
		draw.Draw(stitch, canvas, image.NewUniform(color.Black), image.Point{}, draw.Src)
	}

	for r := 0; r < opts.Rows; r++ {
		for c := 0; c < opts.Cols; c++ {
			idx := r*opts.Cols + c
			if idx >= len(imgs) {
				break
			}
			origin := image.Pt(c*(offX+size.X)+offX, r*(offY+size.Y)+offY)
			cell := image.Rectangle{Min: origin, Max: origin.Add(size)}
			draw.Draw(stitch, cell, imgs[idx], imgs[idx].Bounds().Min, draw.Src)
		}
	}

	if opts.Resize.IsZero() {
		return stitch, nil
	}

	resized, err := resizeRGBA(stitch, opts.Resize)
	if err != nil {
		return nil, err
	}
	if !gray {
		return resized, nil
	}
	out := image.NewGray(resized.Bounds())
	draw.Draw(out, out.Bounds(), resized, resized.Bounds().Min, draw.Src)
	return out, nil
}

func isGray(img image.Image) bool {
	model := img.ColorModel()
	return model == color.GrayModel || model == color.Gray16Model
}
