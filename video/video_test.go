package video

import (
	"bytes"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDecoderByName(t *testing.T) {
	d, err := NewDecoder(DecoderMPEG1, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DecoderMPEG1, d.Name())

	d, err = NewDecoder(DecoderAuto, nil)
	require.NoError(t, err)
	assert.Contains(t, []string{DecoderFFmpeg, DecoderMPEG1}, d.Name())

	_, err = NewDecoder("opencv", nil)
	assert.Error(t, err)
}

func TestMPEGDecoderOpenMissingFile(t *testing.T) {
	_, err := NewMPEGDecoder().Open(filepath.Join(t.TempDir(), "missing.mpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestMPEGStreamCloseTwice(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "clip.mpg"))
	require.NoError(t, err)

	s := &mpegStream{file: f}
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	// The underlying file handle is released.
	_, err = f.Write([]byte{0})
	assert.ErrorIs(t, err, os.ErrClosed)
}

// flagValue returns the argument following flag, or "" if flag is absent.
func flagValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestRawVideoCommand(t *testing.T) {
	cmd := rawVideoCommand("in.mp4")
	args := cmd.Args

	assert.Equal(t, "in.mp4", flagValue(args, "-i"))
	assert.Equal(t, "0:v:0", flagValue(args, "-map"))
	assert.Equal(t, "passthrough", flagValue(args, "-vsync"))
	assert.Equal(t, "rawvideo", flagValue(args, "-f"))
	assert.Equal(t, "rgba", flagValue(args, "-pix_fmt"))
	assert.Equal(t, "pipe:", args[len(args)-1])
}

func TestRawVideoCommandWritesNoStandardLog(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	rawVideoCommand("in.mp4")

	assert.Empty(t, buf.String())
}

// shellStream runs script as a stand-in for ffmpeg producing 2x1 RGBA
// frames (8 bytes each).
func shellStream(t *testing.T, script string) *ffmpegStream {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	s, err := startStream(exec.Command("sh", "-c", script), Info{Width: 2, Height: 1, FrameRate: 25})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFFmpegStreamReadsWholeFrames(t *testing.T) {
	s := shellStream(t, "head -c 16 /dev/zero")

	for i := 0; i < 2; i++ {
		img, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, 2, img.Bounds().Dx())
		assert.Equal(t, 1, img.Bounds().Dy())
	}

	_, err := s.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestFFmpegStreamTruncatedFrame(t *testing.T) {
	s := shellStream(t, "head -c 10 /dev/zero; echo 'corrupt packet' >&2; exit 3")

	_, err := s.Next()
	require.NoError(t, err)

	_, err = s.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "truncated frame")
	assert.Contains(t, err.Error(), "corrupt packet")

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFFmpegStreamNonZeroExit(t *testing.T) {
	s := shellStream(t, "head -c 8 /dev/zero; echo 'unsupported codec' >&2; exit 3")

	_, err := s.Next()
	require.NoError(t, err)

	_, err = s.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "exit status 3")
	assert.Contains(t, err.Error(), "unsupported codec")
}

func TestFFmpegStreamCloseKillsUndrainedProcess(t *testing.T) {
	s := shellStream(t, "head -c 8 /dev/zero; exec sleep 30")

	_, err := s.Next()
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, s.Close())
	assert.Less(t, time.Since(start), 10*time.Second)

	require.NotNil(t, s.cmd.ProcessState)
	assert.False(t, s.cmd.ProcessState.Success())

	assert.NoError(t, s.Close())
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}
