package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/overlaysplit"
)

// ErrNoAlpha is returned when asked to write a format that cannot keep the
// transparent background of an overlay.
var ErrNoAlpha = errors.New("output format has no alpha channel")

// ErrTooManyColors is returned when a GIF overlay needs more than 255 colors.
var ErrTooManyColors = errors.New("too many colors for a GIF overlay")

func ReadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img in the format named by the filename extension.
// JPEG is refused: overlays depend on their transparent background.
// GIF output uses an exact palette built from the image so colors survive.
func SaveImage(img image.Image, filename string) error {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	switch format {
	case imaging.JPEG:
		return fmt.Errorf("save %s: %w", filename, ErrNoAlpha)
	case imaging.GIF:
		return saveGIF(img, filename)
	}
	return imaging.Save(img, filename)
}

func saveGIF(img image.Image, filename string) error {
	b := img.Bounds()
	pal := color.Palette{color.NRGBA{}}
	index := map[color.NRGBA]uint8{}
	dst := image.NewPaletted(b, nil)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			i, ok := index[c]
			if !ok {
				if len(pal) == 256 {
					return fmt.Errorf("save %s: %w", filename, ErrTooManyColors)
				}
				i = uint8(len(pal))
				index[c] = i
				pal = append(pal, c)
			}
			dst.Pix[dst.PixOffset(x, y)] = i
		}
	}
	dst.Palette = pal

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := gif.Encode(f, dst, &gif.Options{NumColors: len(pal)}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OverlayFileName is the source file name the overlays are named after.
// Sources whose format cannot be written with alpha (jpeg, webp, ...) get a
// .png extension instead, and renamed is true.
func OverlayFileName(original string) (name string, renamed bool) {
	name = filepath.Base(original)
	if IsAlphaFormat(name) {
		return name, false
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png", true
}

// SaveOverlays writes every layer next to each other in dir, named after the
// source file, and returns the written paths in layer order.
func SaveOverlays(layers []overlaysplit.Layer, dir, original string) ([]string, error) {
	name, _ := OverlayFileName(original)
	paths := make([]string, 0, len(layers))
	for _, l := range layers {
		path := filepath.Join(dir, overlaysplit.OutputName(l.Prefix, name))
		if err := SaveImage(l.Image, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// IsAlphaFormat reports whether overlays can be written with the extension
// of filename.
func IsAlphaFormat(filename string) bool {
	format, err := imaging.FormatFromFilename(filename)
	return err == nil && format != imaging.JPEG
}

func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := range h {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	return SaveImage(img, filename)
}
