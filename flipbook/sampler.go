package flipbook

import (
	"errors"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/user/flipbook-cli/video"
	"go.uber.org/zap"
)

// Frame is one sampled still. Frames are never modified once sampled.
type Frame struct {
	Index       int // position in the sampled sequence, 0-based
	SourceIndex int // decode index in the original video
	Image       *image.NRGBA
}

// Width returns the frame width in pixels.
func (f Frame) Width() int { return f.Image.Bounds().Dx() }

// Height returns the frame height in pixels.
func (f Frame) Height() int { return f.Image.Bounds().Dy() }

// FrameStep returns how many decoded frames lie between two samples:
// round(frameRate * interval), never less than 1.
func FrameStep(frameRate, intervalSeconds float64) int {
	step := math.Round(frameRate * intervalSeconds)
	if !(step >= 1) {
		return 1
	}
	if step > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(step)
}

// ScaledHeight returns the height that keeps a srcW x srcH image's aspect
// ratio at targetWidth, rounded to the nearest pixel and at least 1.
func ScaledHeight(srcW, srcH, targetWidth int) int {
	if srcW <= 0 {
		return 1
	}
	h := int(math.Round(float64(targetWidth) * float64(srcH) / float64(srcW)))
	if h < 1 {
		return 1
	}
	return h
}

// Sampler extracts evenly spaced frames from a video.
type Sampler struct {
	decoder video.Decoder
	logger  *zap.Logger
}

// NewSampler returns a Sampler reading through decoder.
func NewSampler(decoder video.Decoder, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{decoder: decoder, logger: logger}
}

// SampleResult is the output of Sample.
type SampleResult struct {
	Frames    []Frame
	FrameRate float64
	FrameStep int
	Decoded   int // total frames decoded, kept or not
}

// Sample decodes path and keeps every frame whose decode index is a multiple
// of the frame step, resized to targetWidth with its aspect ratio preserved.
// The decode handle is released on every return path.
func (s *Sampler) Sample(path string, intervalSeconds float64, targetWidth int) (*SampleResult, error) {
	stream, err := s.decoder.Open(path)
	if err != nil {
		return nil, newError(ErrVideoOpen, "open video", err)
	}
	defer stream.Close()

	rate := stream.FrameRate()
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, newError(ErrInvalidRate, "read frame rate", nil)
	}

	step := FrameStep(rate, intervalSeconds)
	s.logger.Debug("sampling video",
		zap.String("path", path),
		zap.String("decoder", s.decoder.Name()),
		zap.Float64("frame_rate", rate),
		zap.Int("frame_step", step),
	)

	res := &SampleResult{FrameRate: rate, FrameStep: step}
	for idx := 0; ; idx++ {
		img, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(ErrVideoOpen, "decode video", err)
		}
		res.Decoded++

		if idx%step != 0 {
			continue
		}

		res.Frames = append(res.Frames, Frame{
			Index:       len(res.Frames),
			SourceIndex: idx,
			Image:       resize(img, targetWidth),
		})
	}

	s.logger.Debug("sampling finished",
		zap.Int("decoded", res.Decoded),
		zap.Int("sampled", len(res.Frames)),
	)
	return res, nil
}

// resize scales img to targetWidth and returns a fresh NRGBA copy, so the
// decoder is free to reuse its buffer.
func resize(img image.Image, targetWidth int) *image.NRGBA {
	b := img.Bounds()
	h := ScaledHeight(b.Dx(), b.Dy(), targetWidth)
	if b.Dx() == targetWidth && b.Dy() == h {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, targetWidth, h, imaging.Linear)
}
