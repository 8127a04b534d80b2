package video

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gen2brain/mpeg"
)

// MPEGDecoder is a pure-Go decoder for MPEG-1 program streams (.mpg). It
// needs no external binaries but cannot read other codecs.
type MPEGDecoder struct{}

// NewMPEGDecoder returns a pure-Go MPEG-1 decoder.
func NewMPEGDecoder() *MPEGDecoder {
	return &MPEGDecoder{}
}

func (d *MPEGDecoder) Name() string { return DecoderMPEG1 }

func (d *MPEGDecoder) Open(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	mpg, err := mpeg.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mpeg1 %s: %w", path, err)
	}

	return &mpegStream{file: f, mpg: mpg}, nil
}

type mpegStream struct {
	file *os.File
	mpg  *mpeg.MPEG
}

func (s *mpegStream) FrameRate() float64 { return s.mpg.Framerate() }

// maxEmptyDecodes bounds how many consecutive empty decode calls are
// tolerated before the stream is treated as corrupt.
const maxEmptyDecodes = 1 << 16

func (s *mpegStream) Next() (image.Image, error) {
	for empty := 0; empty < maxEmptyDecodes; empty++ {
		if frame := s.mpg.DecodeVideo(); frame != nil {
			return frame.YCbCr(), nil
		}
		if s.mpg.HasEnded() {
			return nil, io.EOF
		}
	}
	return nil, fmt.Errorf("mpeg1: no frame after %d decode attempts", maxEmptyDecodes)
}

func (s *mpegStream) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
