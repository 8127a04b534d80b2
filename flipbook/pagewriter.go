package flipbook

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// PagePrefix starts every output filename.
	PagePrefix = "frame_"
	// PageExt is the output file extension. PNG is lossless and keeps 8 bits
	// per channel.
	PageExt = ".png"

	labelBandPadding = 20 // band height is font size plus this
	labelTopMargin   = 10 // gap between image bottom and text top
	borderWidth      = 2
)

// PageName returns the filename for 1-based page n, e.g. frame_0001.png.
func PageName(n int) string {
	return fmt.Sprintf("%s%04d%s", PagePrefix, n, PageExt)
}

// ExistingPages lists the page files already present in dir, sorted by
// name. A missing directory holds no pages.
func ExistingPages(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, PagePrefix+"*"+PageExt))
}

// PageOptions configures a PageWriter.
type PageOptions struct {
	OutputDir string
	FontSize  int
	AddBorder bool
}

// PageWriter numbers composites and saves them as sequential PNG files.
type PageWriter struct {
	opts   PageOptions
	face   font.Face
	logger *zap.Logger
}

// NewPageWriter returns a PageWriter drawing numbers with face.
func NewPageWriter(opts PageOptions, face font.Face, logger *zap.Logger) *PageWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageWriter{opts: opts, face: face, logger: logger}
}

// PageWritten describes one saved page.
type PageWritten struct {
	Number int
	Total  int
	Path   string
}

// Write renders and saves each image as page 1..n, creating the output
// directory if needed. Pages are written in order; on failure the pages
// already written stay on disk and the count of them is returned with the
// error. onPage may be nil.
func (w *PageWriter) Write(images []*image.NRGBA, onPage func(PageWritten)) (int, error) {
	if err := os.MkdirAll(w.opts.OutputDir, 0755); err != nil {
		return 0, newError(ErrIOWrite, "create output directory", err)
	}

	for i, img := range images {
		n := i + 1
		path := filepath.Join(w.opts.OutputDir, PageName(n))

		if err := imaging.Save(w.RenderPage(img, n), path); err != nil {
			return i, newError(ErrIOWrite, "write "+PageName(n), err)
		}
		w.logger.Debug("page written", zap.Int("page", n), zap.String("path", path))

		if onPage != nil {
			onPage(PageWritten{Number: n, Total: len(images), Path: path})
		}
	}

	return len(images), nil
}

// RenderPage places img on a white canvas with a label band below it,
// draws number centred in the band and, if enabled, a border around the
// whole canvas.
func (w *PageWriter) RenderPage(img *image.NRGBA, number int) *image.NRGBA {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	band := w.opts.FontSize + labelBandPadding

	canvas := imaging.New(width, height+band, color.White)
	draw.Draw(canvas, image.Rect(0, 0, width, height), img, b.Min, draw.Src)

	w.drawLabel(canvas, strconv.Itoa(number), width, height+labelTopMargin)

	if w.opts.AddBorder {
		drawBorder(canvas, borderWidth, color.Black)
	}
	return canvas
}

// drawLabel draws text in black, horizontally centred on a canvas of the
// given width, with the top of the face's ascent at y=top.
func (w *PageWriter) drawLabel(canvas *image.NRGBA, text string, width, top int) {
	bounds, _ := font.BoundString(w.face, text)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	x := floorDiv(width-textWidth, 2) - bounds.Min.X.Floor()
	baseline := top + w.face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: w.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

// drawBorder paints a stroke-pixel outline along the inside edge of img.
func drawBorder(img *image.NRGBA, stroke int, c color.Color) {
	b := img.Bounds()
	src := image.NewUniform(c)
	for _, r := range []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+stroke), // top
		image.Rect(b.Min.X, b.Max.Y-stroke, b.Max.X, b.Max.Y), // bottom
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+stroke, b.Max.Y), // left
		image.Rect(b.Max.X-stroke, b.Min.Y, b.Max.X, b.Max.Y), // right
	} {
		draw.Draw(img, r.Intersect(b), src, image.Point{}, draw.Src)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
