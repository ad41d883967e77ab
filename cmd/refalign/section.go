package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refalign/refalign"
	"github.com/refalign/refalign/annotate"
	"github.com/refalign/refalign/layout"
)

var sectionCmd = &cobra.Command{
	Use:   "section <paper.pdf>",
	Short: "Locate the bibliography section in a PDF",
	Long: `Section extracts the document's text and reports where the
bibliography section starts and ends, with the heading keyword and the
score it won with. Useful for checking a document before annotating it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}

func runSection(cmd *cobra.Command, args []string) error {
	pages, err := refalign.Open(args[0]).Pages()
	if err != nil {
		return err
	}

	var sb strings.Builder
	for i, page := range pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(layout.NewPageIndex(page).Text())
	}
	fullText := sb.String()

	section := annotate.LocateSection(fullText)
	if section == nil {
		logger.Warn().Str("pdf", args[0]).Msg("no bibliography section found")
		return fmt.Errorf("no bibliography section found in %s", args[0])
	}

	end := annotate.SectionEnd(fullText, section.CharIndex)
	endDesc := "end of document"
	if end >= 0 {
		endDesc = fmt.Sprintf("char %d", end)
	}

	fmt.Printf("Heading:  %s\n", section.Keyword)
	fmt.Printf("Line:     %d\n", section.LineNum)
	fmt.Printf("Score:    %d\n", section.Score)
	fmt.Printf("Span:     char %d to %s\n", section.CharIndex, endDesc)
	return nil
}
