package manifest

import (
	"net/http"

	"streamgrab/internal/media"
)

// mssResolver maps a smooth-streaming manifest to a single passthrough
// descriptor. Track-level expansion happens in the downstream muxer, which
// reads the ISM manifest itself.
type mssResolver struct{}

func (r *mssResolver) Resolve(manifestURL string, header http.Header) ([]media.Format, error) {
	return []media.Format{{
		ID:       "mss",
		URL:      manifestURL,
		Ext:      "ismv",
		Protocol: "ism",
	}}, nil
}
