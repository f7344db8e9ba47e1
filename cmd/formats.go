package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamgrab/internal/stream"
	"streamgrab/internal/ui"
)

var flagPick bool

var formatsCmd = &cobra.Command{
	Use:   "formats <video-url>",
	Short: "List resolved stream formats for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  formatsRun,
}

func init() {
	formatsCmd.Flags().BoolVar(&flagPick, "pick", false, "Pick one format interactively and print only its URL")
}

func formatsRun(cmd *cobra.Command, args []string) error {
	e, err := newExtractor()
	if err != nil {
		return err
	}

	record, err := e.Extract(args[0], stream.Options{})
	if err != nil {
		return err
	}

	if len(record.Formats) == 0 {
		return fmt.Errorf("no formats resolved for %s", record.ID)
	}

	if flagJSON {
		return printJSON(record.Formats)
	}

	if flagPick {
		items := make([]string, len(record.Formats))
		for i, f := range record.Formats {
			items[i] = describeFormat(f)
		}
		idx, err := ui.Pick("Format", items)
		if err != nil {
			return err
		}
		fmt.Println(record.Formats[idx].URL)
		return nil
	}

	for _, f := range record.Formats {
		fmt.Printf("%s\n  %s\n", describeFormat(f), f.URL)
	}
	return nil
}
