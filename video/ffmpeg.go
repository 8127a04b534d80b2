package video

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

func init() {
	// ffmpeg-go prints every compiled command with the standard logger;
	// Open logs it through zap at debug level instead.
	ffmpeg.LogCompiledCommand = false
}

// FFmpegDecoder decodes any container ffmpeg understands by reading raw RGBA
// frames from the ffmpeg process's stdout.
type FFmpegDecoder struct {
	logger *zap.Logger
}

// NewFFmpegDecoder returns an ffmpeg-backed decoder.
func NewFFmpegDecoder(logger *zap.Logger) *FFmpegDecoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegDecoder{logger: logger}
}

func (d *FFmpegDecoder) Name() string { return DecoderFFmpeg }

// Open probes path and starts an ffmpeg process streaming its first video
// stream. The caller must Close the returned stream.
func (d *FFmpegDecoder) Open(path string) (Stream, error) {
	info, err := Probe(path)
	if err != nil {
		return nil, err
	}

	cmd := rawVideoCommand(path)
	d.logger.Debug("starting ffmpeg",
		zap.Strings("args", cmd.Args),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Float64("frame_rate", info.FrameRate),
	)
	return startStream(cmd, info)
}

// startStream starts cmd and reads width*height*4 bytes of RGBA per frame
// from its stdout.
func startStream(cmd *exec.Cmd, info Info) (*ffmpegStream, error) {
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	return &ffmpegStream{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		info:   info,
		buf:    make([]byte, info.Width*info.Height*4),
	}, nil
}

// rawVideoCommand builds:
//
//	ffmpeg -i <path> -map 0:v:0 -vsync passthrough -f rawvideo -pix_fmt rgba pipe:
func rawVideoCommand(path string) *exec.Cmd {
	return ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"map":     "0:v:0",
			"vsync":   "passthrough",
			"format":  "rawvideo",
			"pix_fmt": "rgba",
		}).
		Compile()
}

type ffmpegStream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	info   Info
	buf    []byte
	frame  image.RGBA
	done   bool
	closed bool
}

func (s *ffmpegStream) FrameRate() float64 { return s.info.FrameRate }

func (s *ffmpegStream) Next() (image.Image, error) {
	if s.done {
		return nil, io.EOF
	}

	_, err := io.ReadFull(s.stdout, s.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		s.done = true
		if werr := s.wait(); werr != nil {
			return nil, werr
		}
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
		_ = s.wait()
		return nil, fmt.Errorf("ffmpeg: truncated frame (%s)", s.stderrTail())
	default:
		return nil, fmt.Errorf("read frame: %w", err)
	}

	s.frame = image.RGBA{
		Pix:    s.buf,
		Stride: s.info.Width * 4,
		Rect:   image.Rect(0, 0, s.info.Width, s.info.Height),
	}
	return &s.frame, nil
}

// wait reaps the ffmpeg process once its output has been drained.
func (s *ffmpegStream) wait() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w (%s)", err, s.stderrTail())
	}
	return nil
}

func (s *ffmpegStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.done && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.done = true
	_ = s.cmd.Wait()
	return nil
}

func (s *ffmpegStream) stderrTail() string {
	msg := strings.TrimSpace(s.stderr.String())
	const limit = 512
	if len(msg) > limit {
		msg = "..." + msg[len(msg)-limit:]
	}
	if msg == "" {
		return "no output"
	}
	return msg
}
