// Package manifest resolves streaming-manifest URLs (HLS, DASH, smooth
// streaming) into playable format descriptors.
package manifest

import (
	"net/http"

	"streamgrab/internal/media"
)

// Playback mime types announced by the Stream API.
const (
	MimeHLS  = "application/vnd.apple.mpegurl"
	MimeDASH = "application/dash+xml"
	MimeMSS  = "application/vnd.ms-sstr+xml"
)

// Resolver turns one manifest URL into zero or more formats. header carries
// the bearer auth the manifest host requires.
type Resolver interface {
	Resolve(manifestURL string, header http.Header) ([]media.Format, error)
}

// Set holds the resolver for each supported manifest flavor. Tests swap in
// fakes; nil members disable that flavor.
type Set struct {
	HLS  Resolver
	DASH Resolver
	MSS  Resolver
}

// NewSet returns the default resolvers sharing one HTTP client.
func NewSet(client *http.Client) *Set {
	return &Set{
		HLS:  &hlsResolver{client: client},
		DASH: &dashResolver{client: client},
		MSS:  &mssResolver{},
	}
}

// ForMIME returns the resolver for a playback mime type, or nil for
// unrecognized types so new formats are skipped rather than fatal.
func (s *Set) ForMIME(mime string) Resolver {
	switch mime {
	case MimeHLS:
		return s.HLS
	case MimeDASH:
		return s.DASH
	case MimeMSS:
		return s.MSS
	default:
		return nil
	}
}
