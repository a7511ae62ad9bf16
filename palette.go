// Package overlaysplit routes the pixels of an image into overlays by palette color.
package overlaysplit

import "fmt"

// PaletteEntry is one paintable color of the palette document.
type PaletteEntry struct {
	Color     string `json:"color"`
	Name      string `json:"name"`
	IsPremium bool   `json:"isPremium"`
}

type Palette []PaletteEntry

// Config is the classification document.
// Position in Arbitrary is the output index of that category.
type Config struct {
	Arbitrary []string `json:"arbitrary" mapstructure:"arbitrary"`
}

// ColorKey returns the canonical lowercase "#rrggbb" key of an RGB triple.
// Alpha is never part of the key.
func ColorKey(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

type Bucket int

const (
	BucketNone Bucket = iota
	BucketFree
	BucketPremium
	BucketArbitrary
)

func (b Bucket) String() string {
	switch b {
	case BucketFree:
		return "free"
	case BucketPremium:
		return "premium"
	case BucketArbitrary:
		return "arbitrary"
	default:
		return "none"
	}
}

// Class is the destination of a single pixel.
// Index is only meaningful for BucketArbitrary.
type Class struct {
	Bucket Bucket
	Index  int
}
