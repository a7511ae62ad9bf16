package overlaysplit

import (
	"image"
	"image/color"
	"path/filepath"
	"strconv"
)

const (
	PremiumPrefix   = "premium_overlay_"
	FreePrefix      = "free_overlay_"
	ArbitraryPrefix = "arbitrary_overlay_"
)

type Stats struct {
	Total       int
	Transparent int
	Free        int
	Premium     int
	Arbitrary   []int // per category, configuration order
	Unmatched   int
	// Pixel count per color key that matched no palette entry.
	UnmatchedColors map[string]int
}

type Layer struct {
	Prefix string
	Image  *image.NRGBA
}

type OverlaySplitter struct {
	InputImage image.Image
	Classifier *Classifier
	Free       *image.NRGBA
	Premium    *image.NRGBA
	Arbitrary  []*image.NRGBA
	Stats      Stats
}

func NewOverlaySplitter(input image.Image, classifier *Classifier) *OverlaySplitter {
	return &OverlaySplitter{
		InputImage: input,
		Classifier: classifier,
	}
}

// Build allocates fresh transparent canvases and routes every pixel of the
// input into at most one of them. Calling Build again starts over.
func (s *OverlaySplitter) Build() {
	bounds := s.InputImage.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rect := image.Rect(0, 0, w, h)

	s.Free = image.NewNRGBA(rect)
	s.Premium = image.NewNRGBA(rect)
	s.Arbitrary = make([]*image.NRGBA, s.Classifier.ArbitraryCount())
	for i := range s.Arbitrary {
		s.Arbitrary[i] = image.NewNRGBA(rect)
	}
	s.Stats = Stats{
		Total:           w * h,
		Arbitrary:       make([]int, len(s.Arbitrary)),
		UnmatchedColors: make(map[string]int),
	}

	for y := range h {
		for x := range w {
			px, key, class := s.Classifier.classifyPixel(s.InputImage.At(bounds.Min.X+x, bounds.Min.Y+y))
			if px.A == 0 {
				s.Stats.Transparent++
				continue
			}
			opaque := color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255}
			switch class.Bucket {
			case BucketArbitrary:
				s.Arbitrary[class.Index].SetNRGBA(x, y, opaque)
				s.Stats.Arbitrary[class.Index]++
			case BucketFree:
				s.Free.SetNRGBA(x, y, opaque)
				s.Stats.Free++
			case BucketPremium:
				s.Premium.SetNRGBA(x, y, opaque)
				s.Stats.Premium++
			default:
				s.Stats.Unmatched++
				s.Stats.UnmatchedColors[key]++
			}
		}
	}
}

// Layers returns the built canvases in write order: premium, free, then
// each arbitrary category. It is nil before Build.
func (s *OverlaySplitter) Layers() []Layer {
	if s.Free == nil {
		return nil
	}
	out := make([]Layer, 0, 2+len(s.Arbitrary))
	out = append(out,
		Layer{Prefix: PremiumPrefix, Image: s.Premium},
		Layer{Prefix: FreePrefix, Image: s.Free},
	)
	for i, img := range s.Arbitrary {
		out = append(out, Layer{Prefix: ArbitraryPrefix + strconv.Itoa(i) + "_", Image: img})
	}
	return out
}

// OutputName is the file name of a layer for the given source file.
// Only the base name of original is kept.
func OutputName(prefix, original string) string {
	return prefix + filepath.Base(original)
}
