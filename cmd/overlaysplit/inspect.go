package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/setanarut/overlaysplit"
	"github.com/setanarut/overlaysplit/utils"
)

func newInspectCmd(v *viper.Viper) *cobra.Command {
	var (
		k      int
		method string
		swatch string
	)
	cmd := &cobra.Command{
		Use:   "inspect <filename>",
		Short: "List the dominant colors of an image and where they would be routed",
		Args:  requireFilename,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := utils.ParsePaletteMethod(method)
			if !ok {
				return fmt.Errorf("unknown method %q, want dominantcolor or kmeans", method)
			}
			return runInspect(cmd.OutOrStdout(), args[0], v.GetString("config"), v.GetString("colors"), k, m, swatch)
		},
	}
	cmd.Flags().IntVarP(&k, "colors-count", "k", 8, "number of colors to extract")
	cmd.Flags().StringVarP(&method, "method", "m", utils.PaletteMethodDominantColor.String(), "extraction method: dominantcolor or kmeans")
	cmd.Flags().StringVar(&swatch, "swatch", "", "write the extracted colors as a swatch image")
	return cmd
}

func runInspect(w io.Writer, filename, configPath, colorsPath string, k int, method utils.PaletteMethod, swatch string) error {
	palette, config, err := loadDocuments(configPath, colorsPath)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(filename)
	if err != nil {
		return err
	}

	findings := utils.Inspect(img, palette, overlaysplit.NewClassifier(palette, config), k, method)
	log.WithField("colors", len(findings)).WithField("method", method).Debug("colors extracted")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLOR\tBUCKET\tENTRY")
	for _, f := range findings {
		bucket := f.Class.Bucket.String()
		if f.Class.Bucket == overlaysplit.BucketArbitrary {
			bucket = fmt.Sprintf("arbitrary %d", f.Class.Index)
		}
		entry := f.Entry.Name
		if f.Nearest {
			entry = fmt.Sprintf("nearest %s %s (%.3f)", f.Entry.Name, f.Entry.Color, f.Distance)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Key, bucket, entry)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if swatch == "" || len(findings) == 0 {
		return nil
	}
	colors := make([]colorful.Color, 0, len(findings))
	for _, f := range findings {
		colors = append(colors, f.Color)
	}
	utils.SortPaletteByBrightness(colors)
	if err := utils.SavePalette(colors, 64, swatch); err != nil {
		return err
	}
	log.WithField("file", swatch).Info("swatch written")
	return nil
}
