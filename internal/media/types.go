// Package media defines the normalized metadata record shared between the
// extractor, the manifest resolvers, and the CLI output layer.
package media

import "sort"

// Format is a single playable stream variant resolved from a manifest.
type Format struct {
	ID       string `json:"format_id"`
	URL      string `json:"url"`
	Ext      string `json:"ext,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Language string `json:"language,omitempty"`
	Bitrate  int64  `json:"tbr,omitempty"` // kbit/s
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Codecs   string `json:"codecs,omitempty"`
}

// Thumbnail is a poster image variant keyed by the source's size label.
// Width/Height are 0 when the resolution could not be recovered.
type Thumbnail struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// SubtitleTrack is one subtitle file reference.
type SubtitleTrack struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// SubtitleMap maps a language code to its tracks, in source order.
type SubtitleMap map[string][]SubtitleTrack

// Record is the normalized output of an extraction. ID is always set;
// Formats may be empty when every manifest fetch failed.
type Record struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Uploader     string      `json:"uploader,omitempty"`
	UploaderID   string      `json:"uploader_id,omitempty"`
	Thumbnails   []Thumbnail `json:"thumbnails,omitempty"`
	Subtitles    SubtitleMap `json:"subtitles,omitempty"`
	AutoCaptions SubtitleMap `json:"automatic_captions,omitempty"`
	Timestamp    *int64      `json:"timestamp,omitempty"`
	Duration     *float64    `json:"duration,omitempty"`
	WebpageURL   string      `json:"webpage_url,omitempty"`
	ViewCount    *int64      `json:"view_count,omitempty"`
	LikeCount    *int64      `json:"like_count,omitempty"`
	CommentCount *int64      `json:"comment_count,omitempty"`
	Formats      []Format    `json:"formats"`
}

// SortFormats orders formats worst-first by height, then bitrate, then ID,
// the ranking the downstream selector expects.
func SortFormats(formats []Format) {
	sort.SliceStable(formats, func(i, j int) bool {
		a, b := formats[i], formats[j]
		if a.Height != b.Height {
			return a.Height < b.Height
		}
		if a.Bitrate != b.Bitrate {
			return a.Bitrate < b.Bitrate
		}
		return a.ID < b.ID
	})
}
