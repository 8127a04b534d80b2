package flipbook

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/user/flipbook-cli/video"
)

// fakeDecoder produces count synthetic frames. Pixel (x, y) of frame i is
// RGB(i, y, x), so every sampled pixel can be traced back to its source.
type fakeDecoder struct {
	rate    float64
	count   int
	width   int
	height  int
	openErr error
	failAt  int // decode index that errors; -1 for none

	opened int
	closed int
}

func newFakeDecoder(rate float64, count, width, height int) *fakeDecoder {
	return &fakeDecoder{rate: rate, count: count, width: width, height: height, failAt: -1}
}

func (d *fakeDecoder) Name() string { return "fake" }

func (d *fakeDecoder) Open(path string) (video.Stream, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.opened++
	return &fakeStream{
		d:   d,
		buf: image.NewRGBA(image.Rect(0, 0, d.width, d.height)),
	}, nil
}

type fakeStream struct {
	d    *fakeDecoder
	next int
	// buf is reused across frames like a real decoder's output buffer.
	buf *image.RGBA
}

func (s *fakeStream) FrameRate() float64 { return s.d.rate }

func (s *fakeStream) Next() (image.Image, error) {
	if s.next == s.d.failAt {
		return nil, errors.New("corrupt packet")
	}
	if s.next >= s.d.count {
		return nil, io.EOF
	}
	paintFrame(s.buf, s.next)
	s.next++
	return s.buf, nil
}

func (s *fakeStream) Close() error {
	s.d.closed++
	return nil
}

func paintFrame(img *image.RGBA, index int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(index), G: uint8(y), B: uint8(x), A: 0xff})
		}
	}
}

// makeFrames builds n sampled frames of w x h directly, bypassing the sampler.
func makeFrames(n, w, h int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		paintFrame(rgba, i)
		nrgba := image.NewNRGBA(rgba.Bounds())
		copy(nrgba.Pix, rgba.Pix)
		frames[i] = Frame{Index: i, SourceIndex: i, Image: nrgba}
	}
	return frames
}

// noFonts makes font resolution fall through to the built-in face so tests
// do not depend on the fonts installed on the machine.
func noFonts(Config) []FontCandidate {
	return []FontCandidate{
		{Name: "Missing Bold", Paths: []string{"/nonexistent/missing-bold.ttf"}},
		{Name: "Also Missing Bold", Paths: []string{"/nonexistent/also-missing-bold.ttf"}},
	}
}
