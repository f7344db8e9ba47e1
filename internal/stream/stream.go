// Package stream extracts normalized media metadata from Microsoft Stream
// video pages and the private Stream REST API.
package stream

import (
	"fmt"
	"net/http"
	"regexp"

	"streamgrab/internal/httputil"
	"streamgrab/internal/manifest"
	"streamgrab/internal/media"
)

const defaultPageBase = "https://web.microsoftstream.com"

// Video IDs are lowercase hyphenated UUIDs.
var videoURLRe = regexp.MustCompile(`^https?://(?:web|www|msit)\.microsoftstream\.com/video/([\da-f]{8}-[\da-f]{4}-[\da-f]{4}-[\da-f]{4}-[\da-f]{12})(?:[?#/]|$)`)

// Options are the caller-supplied flags gating the optional subtitle fetch.
type Options struct {
	WriteSubtitles    bool
	WriteAutoCaptions bool
	ListSubtitles     bool
}

func (o Options) wantSubtitles() bool {
	return o.WriteSubtitles || o.WriteAutoCaptions || o.ListSubtitles
}

// Extractor pulls one video's metadata per Extract call. It holds no state
// across calls beyond the shared HTTP client.
type Extractor struct {
	client    *http.Client
	resolvers *manifest.Set
	pageBase  string
	userAgent string
	logf      func(format string, args ...any)
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithHTTPClient sets the shared HTTP client (carries the session cookie jar).
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) { e.client = client }
}

// WithResolvers replaces the manifest resolver set (used by tests).
func WithResolvers(set *manifest.Set) Option {
	return func(e *Extractor) { e.resolvers = set }
}

// WithPageBase overrides the page host (used by tests).
func WithPageBase(base string) Option {
	return func(e *Extractor) { e.pageBase = base }
}

// WithUserAgent overrides the default browser User-Agent on every request.
func WithUserAgent(userAgent string) Option {
	return func(e *Extractor) { e.userAgent = userAgent }
}

// WithLogger sets the debug log sink.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(e *Extractor) { e.logf = logf }
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		pageBase: defaultPageBase,
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.client == nil {
		e.client = httputil.NewClient(nil)
	}
	if e.resolvers == nil {
		e.resolvers = manifest.NewSet(e.client)
	}
	return e
}

// MatchID extracts the video ID from a Stream URL, or ErrUnsupportedURL.
func MatchID(rawURL string) (string, error) {
	m := videoURLRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrUnsupportedURL
	}
	return m[1], nil
}

// Extract fetches and normalizes the metadata for one video URL.
func (e *Extractor) Extract(rawURL string, opts Options) (*media.Record, error) {
	videoID, err := MatchID(rawURL)
	if err != nil {
		return nil, err
	}

	page, err := httputil.Get(e.client, e.pageBase+"/video/"+videoID, e.baseHeader())
	if err != nil {
		return nil, fmt.Errorf("fetching video page: %w", err)
	}

	if err := checkAuthenticated(page); err != nil {
		return nil, err
	}

	token, apiBase, err := scrapeCredentials(page)
	if err != nil {
		return nil, err
	}

	header := e.baseHeader()
	header.Set("Authorization", "Bearer "+token)

	data, err := e.fetchVideo(apiBase, videoID, header)
	if err != nil {
		return nil, fmt.Errorf("fetching video metadata: %w", err)
	}

	// The API's own id wins over the URL-derived one when present.
	if data.ID != "" {
		videoID = data.ID
	}

	record := &media.Record{
		ID:           videoID,
		Title:        data.Name,
		Description:  data.Description,
		Uploader:     data.Creator.Name,
		UploaderID:   firstNonEmpty(data.Creator.Mail, data.Creator.ID),
		Thumbnails:   thumbnails(data.PosterImage),
		Timestamp:    parseTimestamp(data.Created),
		Duration:     parseISODuration(data.Media.Duration),
		WebpageURL:   defaultPageBase + "/video/" + videoID,
		ViewCount:    data.Metrics.Views,
		LikeCount:    data.Metrics.Likes,
		CommentCount: data.Metrics.Comments,
	}

	record.Formats = e.resolveFormats(data, header)
	media.SortFormats(record.Formats)

	if opts.wantSubtitles() {
		record.Subtitles, record.AutoCaptions = e.allSubtitles(apiBase, videoID, header)
	}

	return record, nil
}

// resolveFormats dispatches each playlist entry to the resolver for its
// mime type. Unknown types and failed resolutions are skipped; they narrow
// the format list without aborting the extraction.
func (e *Extractor) resolveFormats(data *videoData, header http.Header) []media.Format {
	var formats []media.Format
	for _, entry := range data.PlaybackURLs {
		resolver := e.resolvers.ForMIME(entry.MimeType)
		if resolver == nil {
			e.logf("skipping unsupported playback type %q", entry.MimeType)
			continue
		}
		resolved, err := resolver.Resolve(entry.PlaybackURL, header)
		if err != nil {
			e.logf("resolving %s manifest: %v", entry.MimeType, err)
			continue
		}
		formats = append(formats, resolved...)
	}

	// Tag every format with the video language unless the resolver set one.
	for i := range formats {
		if formats[i].Language == "" {
			formats[i].Language = data.Language
		}
	}

	return formats
}

// allSubtitles fetches and partitions the text tracks. Failure is soft:
// the record just ends up with empty subtitle maps.
func (e *Extractor) allSubtitles(apiBase, videoID string, header http.Header) (media.SubtitleMap, media.SubtitleMap) {
	tracks, err := e.fetchTextTracks(apiBase, videoID, header)
	if err != nil {
		e.logf("fetching text tracks: %v", err)
		return media.SubtitleMap{}, media.SubtitleMap{}
	}
	return partitionTracks(tracks)
}

// baseHeader carries the per-extractor header overrides applied to every
// request (the shared client's defaults cover the rest).
func (e *Extractor) baseHeader() http.Header {
	header := http.Header{}
	if e.userAgent != "" {
		header.Set("User-Agent", e.userAgent)
	}
	return header
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
