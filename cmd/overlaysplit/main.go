// Command overlaysplit splits a pixel-art image into free, premium and
// per-category overlays according to a color palette.
//
// Usage:
//
//	overlaysplit art.png
//	overlaysplit art.png -c config.json -C wplace-colors.json -o out/
//	overlaysplit inspect art.png -k 12 --swatch swatch.png
//
// Flags can also be set from the environment (OVERLAYSPLIT_CONFIG,
// OVERLAYSPLIT_COLORS, OVERLAYSPLIT_OUTPUT, OVERLAYSPLIT_VERBOSE) or from a
// .env file in the working directory.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("could not load .env file")
	}
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("overlaysplit failed")
		os.Exit(1)
	}
}
