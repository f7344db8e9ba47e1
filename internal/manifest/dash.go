package manifest

import (
	"fmt"
	"net/http"

	"github.com/zencoder/go-dash/v3/mpd"

	"streamgrab/internal/httputil"
	"streamgrab/internal/media"
)

// dashResolver expands a DASH MPD into one format per representation.
// Segment URL templating stays the downstream downloader's concern; each
// format points at the manifest itself.
type dashResolver struct {
	client *http.Client
}

func (r *dashResolver) Resolve(manifestURL string, header http.Header) ([]media.Format, error) {
	body, err := httputil.Get(r.client, manifestURL, header)
	if err != nil {
		return nil, fmt.Errorf("fetching MPD: %w", err)
	}

	manifest, err := mpd.ReadFromString(body)
	if err != nil {
		return nil, fmt.Errorf("parsing MPD: %w", err)
	}

	var formats []media.Format
	for _, period := range manifest.Periods {
		for _, set := range period.AdaptationSets {
			for _, rep := range set.Representations {
				f := media.Format{
					ID:       "dash",
					URL:      manifestURL,
					Protocol: "dash",
				}
				if rep.ID != nil && *rep.ID != "" {
					f.ID = "dash-" + *rep.ID
				}
				if rep.Bandwidth != nil {
					f.Bitrate = *rep.Bandwidth / 1000
				}
				if rep.Width != nil {
					f.Width = int(*rep.Width)
				}
				if rep.Height != nil {
					f.Height = int(*rep.Height)
				}
				if rep.Codecs != nil {
					f.Codecs = *rep.Codecs
				}
				formats = append(formats, f)
			}
		}
	}

	return formats, nil
}
