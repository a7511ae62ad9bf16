package main

import (
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/setanarut/overlaysplit"
	"github.com/setanarut/overlaysplit/utils"
)

var errNoFilename = errors.New("no filename provided")

// maxUnmatchedReport caps the unmatched colors listed at debug level.
const maxUnmatchedReport = 20

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("OVERLAYSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "overlaysplit <filename>",
		Short: "Separate a pixel-art image into free, premium and arbitrary overlays",
		Long: "Separates overlays for wplace overlay pro, one image per color\n" +
			"category, to make bigger projects easier to work on.",
		Args:          requireFilename,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v.GetBool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(args[0], v.GetString("config"), v.GetString("colors"), v.GetString("output"))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "config.json", "classification document with the \"arbitrary\" category list")
	pf.StringP("colors", "C", "wplace-colors.json", "palette document")
	pf.BoolP("verbose", "v", false, "log debug details")
	cmd.Flags().StringP("output", "o", ".", "directory the overlays are written to")
	if err := v.BindPFlags(pf); err != nil {
		panic(err)
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}

	cmd.AddCommand(newInspectCmd(v))
	return cmd
}

func requireFilename(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errNoFilename
	}
	return cobra.ExactArgs(1)(cmd, args)
}

// loadDocuments reads both documents and logs anything that can never match.
func loadDocuments(configPath, colorsPath string) (overlaysplit.Palette, overlaysplit.Config, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, overlaysplit.Config{}, err
	}
	palette, err := utils.LoadPalette(colorsPath)
	if err != nil {
		return nil, overlaysplit.Config{}, err
	}
	for _, w := range utils.CheckDocuments(palette, config) {
		log.Debug(w)
	}
	return palette, config, nil
}

func runSplit(filename, configPath, colorsPath, outputDir string) error {
	palette, config, err := loadDocuments(configPath, colorsPath)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(filename)
	if err != nil {
		return err
	}

	classifier := overlaysplit.NewClassifier(palette, config)
	splitter := overlaysplit.NewOverlaySplitter(img, classifier)
	splitter.Build()

	if name, renamed := utils.OverlayFileName(filename); renamed {
		log.WithFields(logrus.Fields{"source": filename, "name": name}).Info("source format has no alpha, overlays are written as png")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	paths, err := utils.SaveOverlays(splitter.Layers(), outputDir, filename)
	if err != nil {
		return err
	}

	st := splitter.Stats
	log.WithFields(logrus.Fields{
		"pixels":      st.Total,
		"transparent": st.Transparent,
		"free":        st.Free,
		"premium":     st.Premium,
		"arbitrary":   st.Arbitrary,
		"unmatched":   st.Unmatched,
	}).Info("overlays separated")
	for _, p := range paths {
		log.WithField("file", p).Debug("overlay written")
	}
	for i, name := range classifier.ArbitraryNames() {
		log.WithFields(logrus.Fields{"index": i, "category": name, "pixels": st.Arbitrary[i]}).Debug("arbitrary overlay")
	}
	logUnmatched(st.UnmatchedColors)
	return nil
}

func logUnmatched(colors map[string]int) {
	if len(colors) == 0 || !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if d := colors[b] - colors[a]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	for _, k := range keys[:min(len(keys), maxUnmatchedReport)] {
		log.WithFields(logrus.Fields{"color": k, "pixels": colors[k]}).Debug("color not in palette")
	}
}
