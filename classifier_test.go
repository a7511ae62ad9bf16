package overlaysplit

import (
	"image/color"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestColorKey(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{0, 0, 0, "#000000"},
		{255, 255, 255, "#ffffff"},
		{255, 0, 0, "#ff0000"},
		{1, 10, 171, "#010aab"},
		{0x0f, 0xf0, 0x00, "#0ff000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColorKey(tt.r, tt.g, tt.b))
	}
}

func TestColorKeyRoundTrip(t *testing.T) {
	blues := []uint8{0, 1, 9, 10, 15, 16, 127, 128, 200, 254, 255}
	for r := range 256 {
		for g := range 256 {
			for _, b := range blues {
				key := ColorKey(uint8(r), uint8(g), b)
				if !keyPattern.MatchString(key) {
					t.Fatalf("key %q for (%d,%d,%d) is not canonical", key, r, g, b)
				}
				v, err := strconv.ParseUint(key[1:], 16, 32)
				if err != nil || v != uint64(r)<<16|uint64(g)<<8|uint64(b) {
					t.Fatalf("key %q does not decode to (%d,%d,%d)", key, r, g, b)
				}
			}
		}
	}
}

func testPalette() Palette {
	return Palette{
		{Color: "#000000", Name: "Black", IsPremium: false},
		{Color: "#ff0000", Name: "Red", IsPremium: false},
		{Color: "#00ff00", Name: "special", IsPremium: true},
		{Color: "#0000ff", Name: "Blue", IsPremium: true},
		{Color: "#aaaaaa", Name: "Gray", IsPremium: false},
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(testPalette(), Config{Arbitrary: []string{"Gray", "special"}})

	tests := []struct {
		name string
		key  string
		want Class
	}{
		{"free", "#ff0000", Class{Bucket: BucketFree}},
		{"premium", "#0000ff", Class{Bucket: BucketPremium}},
		{"arbitrary free color", "#aaaaaa", Class{Bucket: BucketArbitrary, Index: 0}},
		{"arbitrary beats premium", "#00ff00", Class{Bucket: BucketArbitrary, Index: 1}},
		{"unknown", "#123456", Class{Bucket: BucketNone}},
		{"uppercase never matches", "#FF0000", Class{Bucket: BucketNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.key))
		})
	}
}

func TestClassifyDuplicateColors(t *testing.T) {
	palette := Palette{
		{Color: "#111111", Name: "A", IsPremium: true},
		{Color: "#111111", Name: "B", IsPremium: false},
		{Color: "#222222", Name: "C", IsPremium: true},
		{Color: "#222222", Name: "D", IsPremium: true},
		{Color: "#333333", Name: "E", IsPremium: false},
		{Color: "#333333", Name: "F", IsPremium: false},
	}
	c := NewClassifier(palette, Config{Arbitrary: []string{"X", "F", "E"}})

	// any non-premium entry makes the color free
	assert.Equal(t, Class{Bucket: BucketFree}, c.Classify("#111111"))
	assert.Equal(t, Class{Bucket: BucketPremium}, c.Classify("#222222"))
	// first arbitrary entry in palette order picks the index
	assert.Equal(t, Class{Bucket: BucketArbitrary, Index: 2}, c.Classify("#333333"))

	e, ok := c.Lookup("#111111")
	require.True(t, ok)
	assert.Equal(t, "A", e.Name)
}

func TestClassifyDuplicateArbitraryNames(t *testing.T) {
	c := NewClassifier(testPalette(), Config{Arbitrary: []string{"Red", "Blue", "Red"}})
	assert.Equal(t, 3, c.ArbitraryCount())
	assert.Equal(t, Class{Bucket: BucketArbitrary, Index: 0}, c.Classify("#ff0000"))
	assert.Equal(t, Class{Bucket: BucketArbitrary, Index: 1}, c.Classify("#0000ff"))
}

func TestClassifyMissingArbitraryName(t *testing.T) {
	c := NewClassifier(testPalette(), Config{Arbitrary: []string{"Nope"}})
	assert.Equal(t, 1, c.ArbitraryCount())
	assert.Equal(t, Class{Bucket: BucketFree}, c.Classify("#aaaaaa"))
}

func TestClassifyColor(t *testing.T) {
	c := NewClassifier(testPalette(), Config{})

	assert.Equal(t, Class{Bucket: BucketFree}, c.ClassifyColor(color.NRGBA{R: 255, A: 255}))
	assert.Equal(t, Class{Bucket: BucketFree}, c.ClassifyColor(color.NRGBA{R: 255, A: 1}))
	assert.Equal(t, Class{Bucket: BucketNone}, c.ClassifyColor(color.NRGBA{R: 255, A: 0}))
	// premultiplied input is converted back to straight RGB before keying
	assert.Equal(t, Class{Bucket: BucketFree}, c.ClassifyColor(color.RGBA{R: 128, A: 128}))
}

func TestClassifierIsIsolatedFromConfig(t *testing.T) {
	cfg := Config{Arbitrary: []string{"Red"}}
	c := NewClassifier(testPalette(), cfg)
	cfg.Arbitrary[0] = "Blue"
	assert.Equal(t, []string{"Red"}, c.ArbitraryNames())
	assert.Equal(t, BucketArbitrary, c.Classify("#ff0000").Bucket)
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "none", BucketNone.String())
	assert.Equal(t, "free", BucketFree.String())
	assert.Equal(t, "premium", BucketPremium.String())
	assert.Equal(t, "arbitrary", BucketArbitrary.String())
}

func TestStraight(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want color.NRGBA
	}{
		{"nrgba", color.NRGBA{R: 0x64, G: 1, B: 2, A: 1}, color.NRGBA{R: 0x64, G: 1, B: 2, A: 1}},
		{"nrgba64 low alpha", color.NRGBA64{R: 0x6464, G: 0xff00, B: 0x00ff, A: 0x0101}, color.NRGBA{R: 0x64, G: 0xff, B: 0x00, A: 0x01}},
		{"rgba", color.RGBA{R: 128, A: 128}, color.NRGBA{R: 255, A: 128}},
		{"gray", color.Gray{Y: 7}, color.NRGBA{R: 7, G: 7, B: 7, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, straight(tt.in))
		})
	}
}

func TestClassifyNRGBA64KeepsStoredChannels(t *testing.T) {
	c := NewClassifier(Palette{{Color: "#640000", Name: "Dim Red"}}, Config{})
	assert.Equal(t, Class{Bucket: BucketFree}, c.ClassifyColor(color.NRGBA64{R: 0x6464, A: 0x0101}))

	px, key, class := c.classifyPixel(color.NRGBA64{R: 0x6464, A: 0})
	assert.Zero(t, px.A)
	assert.Empty(t, key)
	assert.Equal(t, BucketNone, class.Bucket)
}
