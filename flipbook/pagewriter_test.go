package flipbook

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func composites(n, w, h int) []*image.NRGBA {
	frames := makeFrames(n, w, h)
	out := make([]*image.NRGBA, n)
	for i, f := range frames {
		out[i] = f.Image
	}
	return out
}

func isBlack(c color.NRGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0xff
}

func isWhite(c color.NRGBA) bool {
	return c == color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func TestPageName(t *testing.T) {
	assert.Equal(t, "frame_0001.png", PageName(1))
	assert.Equal(t, "frame_0042.png", PageName(42))
	assert.Equal(t, "frame_9999.png", PageName(9999))
}

func TestRenderPageLayout(t *testing.T) {
	const w, h, fontSize = 60, 30, 20
	img := composites(1, w, h)[0]
	pw := NewPageWriter(PageOptions{FontSize: fontSize}, basicfont.Face7x13, nil)

	page := pw.RenderPage(img, 7)

	assert.Equal(t, w, page.Bounds().Dx())
	assert.Equal(t, h+fontSize+20, page.Bounds().Dy())

	// Image pasted unchanged at the origin.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.Equal(t, img.NRGBAAt(x, y), page.NRGBAAt(x, y))
		}
	}

	// Band is white except for the black label, which starts 10px below
	// the image and is centred.
	minX, maxX, minY := w, -1, page.Bounds().Dy()
	for y := h; y < page.Bounds().Dy(); y++ {
		for x := 0; x < w; x++ {
			c := page.NRGBAAt(x, y)
			if isWhite(c) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
		}
	}
	require.GreaterOrEqual(t, maxX, minX, "label not drawn")
	assert.GreaterOrEqual(t, minY, h+10)
	left, right := minX, w-1-maxX
	assert.InDelta(t, left, right, 2, "label not centred: left=%d right=%d", left, right)

	assert.True(t, isWhite(page.NRGBAAt(0, page.Bounds().Dy()-1)))
}

func TestRenderPageBorder(t *testing.T) {
	const w, h = 40, 20
	img := composites(1, w, h)[0]
	pw := NewPageWriter(PageOptions{FontSize: 10, AddBorder: true}, basicfont.Face7x13, nil)

	page := pw.RenderPage(img, 1)
	b := page.Bounds()

	for _, p := range []image.Point{
		{0, 0}, {1, 1}, {w - 1, 0}, {w - 2, 5},
		{0, b.Dy() - 1}, {5, b.Dy() - 2}, {w - 1, b.Dy() - 1},
	} {
		assert.True(t, isBlack(page.NRGBAAt(p.X, p.Y)), "border missing at %v", p)
	}

	// Inside the 2px stroke the image and band are untouched.
	assert.Equal(t, img.NRGBAAt(2, 2), page.NRGBAAt(2, 2))
	assert.Equal(t, img.NRGBAAt(w-3, h-1), page.NRGBAAt(w-3, h-1))
	assert.True(t, isWhite(page.NRGBAAt(2, b.Dy()-3)))
}

func TestWriteCreatesSequentialPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	pw := NewPageWriter(PageOptions{OutputDir: dir, FontSize: 12, AddBorder: true}, basicfont.Face7x13, nil)

	var seen []PageWritten
	n, err := pw.Write(composites(12, 16, 8), func(p PageWritten) { seen = append(seen, p) })
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	require.Len(t, seen, 12)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 12)
	for i, e := range entries {
		assert.Equal(t, PageName(i+1), e.Name())
		assert.Equal(t, i+1, seen[i].Number)
		assert.Equal(t, 12, seen[i].Total)
		assert.Equal(t, filepath.Join(dir, e.Name()), seen[i].Path)
	}

	page, err := imaging.Open(filepath.Join(dir, PageName(3)))
	require.NoError(t, err)
	assert.Equal(t, 16, page.Bounds().Dx())
	assert.Equal(t, 8+12+20, page.Bounds().Dy())
}

func TestWriteIsDeterministic(t *testing.T) {
	images := composites(3, 24, 12)
	dirA, dirB := t.TempDir(), t.TempDir()

	for _, dir := range []string{dirA, dirB} {
		pw := NewPageWriter(PageOptions{OutputDir: dir, FontSize: 14, AddBorder: true}, basicfont.Face7x13, nil)
		_, err := pw.Write(images, nil)
		require.NoError(t, err)
	}

	for i := 1; i <= 3; i++ {
		a, err := os.ReadFile(filepath.Join(dirA, PageName(i)))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, PageName(i)))
		require.NoError(t, err)
		assert.Equal(t, a, b, "page %d differs", i)
	}
}

func TestWriteOutputDirIsAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	pw := NewPageWriter(PageOptions{OutputDir: path, FontSize: 12}, basicfont.Face7x13, nil)
	n, err := pw.Write(composites(2, 4, 4), nil)
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, ErrIOWrite))
}

func TestWriteKeepsPagesBeforeFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory squatting on page 2's name makes its write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, PageName(2)), 0755))

	pw := NewPageWriter(PageOptions{OutputDir: dir, FontSize: 12}, basicfont.Face7x13, nil)
	n, err := pw.Write(composites(3, 4, 4), nil)
	assert.Equal(t, 1, n)
	assert.True(t, errors.Is(err, ErrIOWrite))

	_, statErr := os.Stat(filepath.Join(dir, PageName(1)))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, PageName(3)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExistingPages(t *testing.T) {
	dir := t.TempDir()

	pages, err := ExistingPages(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, pages)

	for _, name := range []string{PageName(2), PageName(1), "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	pages, err = ExistingPages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "frame_0001.png"),
		filepath.Join(dir, "frame_0002.png"),
	}, pages)
}
