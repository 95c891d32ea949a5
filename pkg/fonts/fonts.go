// Package fonts provides the font used for labels in raster and vector
// output.
//
// The Go Regular TrueType font ships inside golang.org/x/image, so label
// rendering works without any system fonts installed.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// RegularTTF returns the Go Regular TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once

	faces   = map[float64]font.Face{}
	facesMu sync.Mutex

	ttfBase64     string
	ttfBase64Once sync.Once
)

// Regular returns the parsed Go Regular font. The font is parsed once on
// first access.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face at size points (72 DPI, so one point is
// one pixel). Faces are cached per size.
func Face(size float64) (font.Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := Regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	faces[size] = face
	return face, nil
}

// RegularTTFBase64 returns the TTF font data as a base64 string, for
// embedding in SVG @font-face rules. The result is cached after first
// computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallback fonts for viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`
