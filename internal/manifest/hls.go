package manifest

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/grafov/m3u8"

	"streamgrab/internal/httputil"
	"streamgrab/internal/media"
)

// hlsResolver expands an HLS master playlist into one format per variant.
type hlsResolver struct {
	client *http.Client
}

func (r *hlsResolver) Resolve(manifestURL string, header http.Header) ([]media.Format, error) {
	body, err := httputil.Get(r.client, manifestURL, header)
	if err != nil {
		return nil, fmt.Errorf("fetching HLS playlist: %w", err)
	}

	playlist, listType, err := m3u8.DecodeFrom(strings.NewReader(body), false)
	if err != nil {
		return nil, fmt.Errorf("parsing HLS playlist: %w", err)
	}

	if listType != m3u8.MASTER {
		// A media playlist is a single renditionless stream.
		return []media.Format{{
			ID:       "hls",
			URL:      manifestURL,
			Ext:      "mp4",
			Protocol: "m3u8_native",
		}}, nil
	}

	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, fmt.Errorf("unexpected playlist type for %s", manifestURL)
	}

	base, err := url.Parse(manifestURL)
	if err != nil {
		return nil, fmt.Errorf("parsing playlist URL: %w", err)
	}

	var formats []media.Format
	seen := make(map[string]bool)
	for i, variant := range master.Variants {
		if variant == nil || variant.URI == "" {
			continue
		}

		id := fmt.Sprintf("hls-%d", i)
		if variant.Bandwidth > 0 {
			id = fmt.Sprintf("hls-%d", variant.Bandwidth/1000)
		}
		// Variants in the same bandwidth bucket get the index appended so
		// ids stay unique.
		if seen[id] {
			id = fmt.Sprintf("%s-%d", id, i)
		}
		seen[id] = true
		f := media.Format{
			ID:       id,
			URL:      resolveRef(base, variant.URI),
			Ext:      "mp4",
			Protocol: "m3u8_native",
			Bitrate:  int64(variant.Bandwidth) / 1000,
			Codecs:   variant.Codecs,
		}
		f.Width, f.Height = splitResolution(variant.Resolution)
		formats = append(formats, f)
	}

	return formats, nil
}

// resolveRef resolves a possibly relative playlist reference.
func resolveRef(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// splitResolution parses the "WxH" RESOLUTION attribute.
func splitResolution(res string) (width, height int) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(res), "%dx%d", &w, &h); err != nil {
		return 0, 0
	}
	return w, h
}
