// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"streamgrab/internal/config"
	"streamgrab/internal/cookies"
	"streamgrab/internal/httputil"
	"streamgrab/internal/media"
	"streamgrab/internal/stream"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagCookies  string
	flagSubs     bool
	flagAutoSubs bool
	flagJSON     bool
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "streamgrab <video-url>",
	Short: "Extract downloadable media metadata from Microsoft Stream",
	Long: `Streamgrab pulls title, formats, subtitles, and thumbnails for a
Microsoft Stream video. The site requires a signed-in session: export your
browser cookies to a cookies.txt file and pass it with --cookies.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              extractRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagCookies, "cookies", "c", "", "Path to a Netscape cookies.txt with your session")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output the record as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.Flags().BoolVarP(&flagSubs, "subs", "s", false, "Include subtitle tracks")
	rootCmd.Flags().BoolVarP(&flagAutoSubs, "auto-subs", "a", false, "Include auto-generated captions")

	rootCmd.AddCommand(subsCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagCookies != "" {
		cfg.Cookies = flagCookies
	}
	if flagSubs {
		cfg.WriteSubtitles = true
	}
	if flagAutoSubs {
		cfg.WriteAutoCaptions = true
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	if cfg.Debug {
		log.SetPrefix("[streamgrab] ")
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...any) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// newExtractor builds the extractor with the session cookie jar, if any.
func newExtractor() (*stream.Extractor, error) {
	var jar http.CookieJar
	if cfg.Cookies != "" {
		path, err := cfg.ExpandCookiesPath()
		if err != nil {
			return nil, err
		}
		jar, err = cookies.LoadNetscape(path)
		if err != nil {
			return nil, err
		}
		debugf("loaded session cookies from %s", path)
	}

	opts := []stream.Option{
		stream.WithHTTPClient(httputil.NewClient(jar)),
		stream.WithLogger(debugf),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, stream.WithUserAgent(cfg.UserAgent))
	}

	return stream.New(opts...), nil
}

// extractRun is the default command: streamgrab <url>
func extractRun(cmd *cobra.Command, args []string) error {
	e, err := newExtractor()
	if err != nil {
		return err
	}

	record, err := e.Extract(args[0], stream.Options{
		WriteSubtitles:    cfg.WriteSubtitles,
		WriteAutoCaptions: cfg.WriteAutoCaptions,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(record)
	}

	printSummary(record)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(record *media.Record) {
	fmt.Printf("%s\n", record.Title)
	fmt.Printf("  id:        %s\n", record.ID)
	if record.Uploader != "" {
		fmt.Printf("  uploader:  %s\n", record.Uploader)
	}
	if record.Duration != nil {
		fmt.Printf("  duration:  %s\n", (time.Duration(*record.Duration * float64(time.Second))).Round(time.Second))
	}
	if record.Timestamp != nil {
		fmt.Printf("  created:   %s\n", time.Unix(*record.Timestamp, 0).UTC().Format("2006-01-02 15:04"))
	}
	if record.ViewCount != nil {
		fmt.Printf("  views:     %d\n", *record.ViewCount)
	}
	fmt.Printf("  page:      %s\n", record.WebpageURL)

	if len(record.Formats) > 0 {
		fmt.Println("  formats:")
		for _, f := range record.Formats {
			fmt.Printf("    %s\n", describeFormat(f))
		}
	}
	if len(record.Subtitles) > 0 || len(record.AutoCaptions) > 0 {
		fmt.Printf("  subtitles: %d languages (%d auto)\n", len(record.Subtitles), len(record.AutoCaptions))
	}
}

func describeFormat(f media.Format) string {
	desc := f.ID
	if f.Height > 0 {
		desc += fmt.Sprintf("  %dx%d", f.Width, f.Height)
	}
	if f.Bitrate > 0 {
		desc += fmt.Sprintf("  %dk", f.Bitrate)
	}
	if f.Protocol != "" {
		desc += "  [" + f.Protocol + "]"
	}
	return desc
}
