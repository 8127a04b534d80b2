package flipbook

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// SplitRow returns floor(height * splitRatio), clamped to [0, height].
func SplitRow(height int, splitRatio float64) int {
	row := int(math.Floor(float64(height) * splitRatio))
	if row < 0 {
		return 0
	}
	if row > height {
		return height
	}
	return row
}

// Interleave builds one composite per frame. Composite i takes rows
// [0, split) from frame i+1 and rows [split, height) from frame i, so flipping
// the pages staggers the motion across the split line. The last composite is
// the last frame itself.
func Interleave(frames []Frame, splitRatio float64) ([]*image.NRGBA, error) {
	n := len(frames)
	if n < 2 {
		return nil, newError(ErrInsufficientFrames, "interleave frames", fmt.Errorf("got %d", n))
	}

	w, h := frames[0].Width(), frames[0].Height()
	for _, f := range frames[1:] {
		if f.Width() != w || f.Height() != h {
			return nil, newError(ErrFrameMismatch, "interleave frames",
				fmt.Errorf("frame %d is %dx%d, want %dx%d", f.Index, f.Width(), f.Height(), w, h))
		}
	}

	split := SplitRow(h, splitRatio)
	out := make([]*image.NRGBA, n)
	for i := 0; i < n-1; i++ {
		out[i] = splice(frames[i+1].Image, frames[i].Image, split)
	}
	out[n-1] = frames[n-1].Image

	return out, nil
}

// splice stacks top's rows above split on bottom's rows from split down.
func splice(top, bottom *image.NRGBA, split int) *image.NRGBA {
	b := bottom.Bounds()
	w, h := b.Dx(), b.Dy()

	canvas := imaging.New(w, h, color.Transparent)
	if split < h {
		lower := imaging.Crop(bottom, image.Rect(b.Min.X, b.Min.Y+split, b.Max.X, b.Max.Y))
		canvas = imaging.Paste(canvas, lower, image.Pt(0, split))
	}
	if split > 0 {
		tb := top.Bounds()
		upper := imaging.Crop(top, image.Rect(tb.Min.X, tb.Min.Y, tb.Max.X, tb.Min.Y+split))
		canvas = imaging.Paste(canvas, upper, image.Pt(0, 0))
	}
	return canvas
}
