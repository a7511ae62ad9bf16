package utils

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/setanarut/overlaysplit"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names returned by String.
func ParsePaletteMethod(s string) (PaletteMethod, bool) {
	switch s {
	case "kmeans":
		return PaletteMethodKMeans, true
	case "dominantcolor", "":
		return PaletteMethodDominantColor, true
	}
	return PaletteMethodDominantColor, false
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colors that are far apart in
// Lab, favoring heavy candidates. The heaviest candidate is always first.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab []float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: []float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	bestSeed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[bestSeed].w {
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, s := range selectedIdx {
				minD = min(minD, floats.Distance(items[i].lab, items[s].lab, 2))
			}
			normW := items[i].w / maxW
			score := minD * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		logrus.Warn("kmeans returned an empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// NearestEntry returns the palette entry closest to c in CIE Lab. Entries
// whose color does not parse are skipped.
func NearestEntry(palette overlaysplit.Palette, c colorful.Color) (overlaysplit.PaletteEntry, float64, bool) {
	var best overlaysplit.PaletteEntry
	bestD := math.Inf(1)
	found := false
	for _, e := range palette {
		pc, err := colorful.Hex(e.Color)
		if err != nil {
			continue
		}
		if d := c.DistanceLab(pc); d < bestD {
			best, bestD, found = e, d, true
		}
	}
	return best, bestD, found
}

// Finding describes one extracted color against the palette.
type Finding struct {
	Color colorful.Color
	Key   string
	Class overlaysplit.Class
	// Entry is the matching palette entry, or the nearest one when Class is
	// BucketNone and Nearest is true.
	Entry    overlaysplit.PaletteEntry
	Distance float64
	Nearest  bool
}

// Inspect extracts up to k representative colors of img and reports where
// each would be routed. Nearest entries are informative only.
func Inspect(img image.Image, palette overlaysplit.Palette, classifier *overlaysplit.Classifier, k int, method PaletteMethod) []Finding {
	colors := ExtractPalette(img, k, method)
	out := make([]Finding, 0, len(colors))
	for _, c := range colors {
		r, g, b := c.Clamped().RGB255()
		f := Finding{Color: c, Key: overlaysplit.ColorKey(r, g, b)}
		f.Class = classifier.Classify(f.Key)
		if e, ok := classifier.Lookup(f.Key); ok {
			f.Entry = e
		} else if e, d, ok := NearestEntry(palette, c); ok {
			f.Entry, f.Distance, f.Nearest = e, d, true
		}
		out = append(out, f)
	}
	return out
}
