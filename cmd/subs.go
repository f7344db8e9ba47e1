package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamgrab/internal/media"
	"streamgrab/internal/stream"
)

var subsCmd = &cobra.Command{
	Use:   "subs <video-url>",
	Short: "List subtitle and caption tracks for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  subsRun,
}

func subsRun(cmd *cobra.Command, args []string) error {
	e, err := newExtractor()
	if err != nil {
		return err
	}

	record, err := e.Extract(args[0], stream.Options{ListSubtitles: true})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]media.SubtitleMap{
			"subtitles":          record.Subtitles,
			"automatic_captions": record.AutoCaptions,
		})
	}

	if len(record.Subtitles) == 0 && len(record.AutoCaptions) == 0 {
		fmt.Println("no subtitle tracks")
		return nil
	}

	printTracks("subtitles", record.Subtitles)
	printTracks("automatic captions", record.AutoCaptions)
	return nil
}

func printTracks(label string, tracks media.SubtitleMap) {
	if len(tracks) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for lang, list := range tracks {
		for _, track := range list {
			fmt.Printf("  %-8s %s  %s\n", lang, track.Ext, track.URL)
		}
	}
}
