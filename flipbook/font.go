package flipbook

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontCandidate is a named font and the files it may live in, tried in order.
type FontCandidate struct {
	Name  string
	Paths []string
}

// BuiltinFontName identifies the bitmap face used when no candidate loads.
const BuiltinFontName = "builtin 7x13"

// PlatformFonts lists the bold sans-serif faces tried before the built-in
// bitmap font: Arial Bold first, then DejaVu Sans Bold.
var PlatformFonts = []FontCandidate{
	{
		Name: "Arial Bold",
		Paths: []string{
			`C:\Windows\Fonts\arialbd.ttf`,
			"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
			"/Library/Fonts/Arial Bold.ttf",
			"/usr/share/fonts/truetype/msttcorefonts/Arial_Bold.ttf",
			"/usr/share/fonts/truetype/msttcorefonts/arialbd.ttf",
		},
	},
	{
		Name: "DejaVu Sans Bold",
		Paths: []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
			"/usr/local/share/fonts/DejaVuSans-Bold.ttf",
		},
	},
}

// ResolvedFont is the face chosen for page numbers.
type ResolvedFont struct {
	Name     string
	Face     font.Face
	Warnings []FontWarning
}

// Builtin reports whether resolution fell through to the bitmap font.
func (r *ResolvedFont) Builtin() bool { return r.Name == BuiltinFontName }

// Close releases the face.
func (r *ResolvedFont) Close() error {
	if r.Face == nil {
		return nil
	}
	return r.Face.Close()
}

// ResolveFont tries each candidate at size points (72 DPI, so points equal
// pixels) and returns the first that loads. Failures are recorded as
// warnings; when every candidate fails the built-in bitmap face is used.
// ResolveFont never fails.
func ResolveFont(size int, candidates []FontCandidate, logger *zap.Logger) *ResolvedFont {
	if logger == nil {
		logger = zap.NewNop()
	}

	res := &ResolvedFont{}
	for _, c := range candidates {
		face, err := loadCandidate(c, size)
		if err == nil {
			res.Name = c.Name
			res.Face = face
			return res
		}
		w := FontWarning{Name: c.Name, Err: err}
		res.Warnings = append(res.Warnings, w)
		logger.Warn("font unavailable", zap.String("font", c.Name), zap.Error(err))
	}

	logger.Warn("falling back to built-in bitmap font, page numbers will be small",
		zap.Int("requested_size", size))
	res.Name = BuiltinFontName
	res.Face = basicfont.Face7x13
	return res
}

func loadCandidate(c FontCandidate, size int) (font.Face, error) {
	var errs []error
	for _, path := range c.Paths {
		face, err := loadFace(path, size)
		if err == nil {
			return face, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no paths configured")
	}
	return nil, errors.Join(errs...)
}

func loadFace(path string, size int) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("face %s: %w", path, err)
	}
	return face, nil
}

// FontCandidates returns the resolution order for cfg: a custom font file
// if one is configured, then PlatformFonts.
func FontCandidates(cfg Config) []FontCandidate {
	if cfg.FontPath == "" {
		return PlatformFonts
	}
	out := make([]FontCandidate, 0, len(PlatformFonts)+1)
	out = append(out, FontCandidate{Name: cfg.FontPath, Paths: []string{cfg.FontPath}})
	return append(out, PlatformFonts...)
}
