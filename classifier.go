package overlaysplit

import (
	"image/color"
	"slices"
)

type resolved struct {
	entry     PaletteEntry // first palette entry with this color
	arbitrary int          // -1 if no entry with this color is arbitrary
	free      bool
	premium   bool
}

// Classifier is the read-only context of one run: the palette indexed by
// color key and the arbitrary category order. It is safe to share.
type Classifier struct {
	entries   map[string]resolved
	arbitrary []string
}

// NewClassifier indexes the palette once.
//
// A color listed several times resolves the same way as scanning the whole
// palette per predicate: it is arbitrary if any of its entries names an
// arbitrary category (the first such entry picks the index), free if any
// entry is not premium, premium if any entry is.
func NewClassifier(palette Palette, config Config) *Classifier {
	c := &Classifier{
		entries:   make(map[string]resolved, len(palette)),
		arbitrary: slices.Clone(config.Arbitrary),
	}
	for _, e := range palette {
		r, ok := c.entries[e.Color]
		if !ok {
			r = resolved{entry: e, arbitrary: -1}
		}
		if r.arbitrary < 0 {
			if idx := slices.Index(c.arbitrary, e.Name); idx >= 0 {
				r.arbitrary = idx
			}
		}
		if e.IsPremium {
			r.premium = true
		} else {
			r.free = true
		}
		c.entries[e.Color] = r
	}
	return c
}

func (c *Classifier) ArbitraryCount() int {
	return len(c.arbitrary)
}

// ArbitraryNames returns the categories in output order.
func (c *Classifier) ArbitraryNames() []string {
	return slices.Clone(c.arbitrary)
}

// Lookup returns the first palette entry carrying key.
func (c *Classifier) Lookup(key string) (PaletteEntry, bool) {
	r, ok := c.entries[key]
	return r.entry, ok
}

// Classify applies the priority arbitrary > free > premium to a color key.
// Keys missing from the palette yield BucketNone.
func (c *Classifier) Classify(key string) Class {
	r, ok := c.entries[key]
	if !ok {
		return Class{Bucket: BucketNone}
	}
	switch {
	case r.arbitrary >= 0:
		return Class{Bucket: BucketArbitrary, Index: r.arbitrary}
	case r.free:
		return Class{Bucket: BucketFree}
	case r.premium:
		return Class{Bucket: BucketPremium}
	}
	return Class{Bucket: BucketNone}
}

// ClassifyColor classifies a pixel value. Fully transparent pixels are never
// classified, whatever their RGB.
func (c *Classifier) ClassifyColor(col color.Color) Class {
	_, _, class := c.classifyPixel(col)
	return class
}

// classifyPixel returns the straight pixel value, its color key and its
// class. The key is empty for fully transparent pixels.
func (c *Classifier) classifyPixel(col color.Color) (color.NRGBA, string, Class) {
	px := straight(col)
	if px.A == 0 {
		return px, "", Class{Bucket: BucketNone}
	}
	key := ColorKey(px.R, px.G, px.B)
	return px, key, c.Classify(key)
}

// straight returns the non-premultiplied 8-bit value of col. Straight
// sources keep their stored channels; anything else goes through
// color.NRGBAModel.
func straight(col color.Color) color.NRGBA {
	switch v := col.(type) {
	case color.NRGBA:
		return v
	case color.NRGBA64:
		return color.NRGBA{R: uint8(v.R >> 8), G: uint8(v.G >> 8), B: uint8(v.B >> 8), A: uint8(v.A >> 8)}
	}
	return color.NRGBAModel.Convert(col).(color.NRGBA)
}
