package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/refalign/refalign"
	"github.com/refalign/refalign/model"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <paper.pdf>",
	Short: "Annotate a PDF with reference highlights",
	Long: `Annotate locates each validated reference on the pages of the given
PDF and prints the resulting highlights. With --overlay, a reviewable
overlay PDF is written as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().String("refs", "", "validated references file (.yaml, .yml, or .json)")
	annotateCmd.Flags().String("overlay", "", "write a reviewable overlay PDF to this path")
	annotateCmd.Flags().String("out", "", "write highlights to this file instead of stdout")
	annotateCmd.Flags().String("format", "json", "output format: json or yaml")
	annotateCmd.Flags().Int("year-threshold", 5, "years back from the current year before a publication is outdated")
	annotateCmd.Flags().Int("current-year", 0, "pin the current year instead of using the wall clock")
	_ = annotateCmd.MarkFlagRequired("refs")

	_ = viper.BindPFlag("refs", annotateCmd.Flags().Lookup("refs"))
	_ = viper.BindPFlag("year_threshold", annotateCmd.Flags().Lookup("year-threshold"))

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	refsPath := viper.GetString("refs")
	overlayPath, _ := cmd.Flags().GetString("overlay")
	outPath, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	currentYear, _ := cmd.Flags().GetInt("current-year")

	job := refalign.Open(pdfPath).
		ReferencesFile(refsPath).
		YearThreshold(viper.GetInt("year_threshold")).
		Logger(logger)
	if currentYear > 0 {
		job = job.CurrentYear(currentYear)
	}

	var (
		highlights []model.Highlight
		err        error
	)
	if overlayPath != "" {
		highlights, err = job.Overlay(overlayPath)
	} else {
		highlights, err = job.Annotate()
	}
	if err != nil {
		return err
	}

	logger.Info().Int("highlights", len(highlights)).Str("pdf", pdfPath).Msg("annotation complete")
	return writeHighlights(highlights, outPath, format)
}

func writeHighlights(highlights []model.Highlight, outPath, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(highlights, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(highlights)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("encoding highlights: %w", err)
	}

	if outPath == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
