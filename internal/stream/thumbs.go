package stream

import (
	"encoding/base64"
	"net/url"
	"path"
	"strings"

	"streamgrab/internal/media"
)

// The API keys poster images by these size labels; the output preserves
// this order, worst first.
var thumbnailSizes = [...]string{"extraSmall", "small", "medium", "large"}

// thumbnails maps the posterImage object into thumbnail entries. Labels
// without a URL are skipped; an undecodable filename only loses the
// width/height fields.
func thumbnails(posters map[string]posterImage) []media.Thumbnail {
	var thumbs []media.Thumbnail
	for _, size := range thumbnailSizes {
		posterURL := posters[size].URL
		if posterURL == "" {
			continue
		}
		thumb := media.Thumbnail{ID: size, URL: posterURL}
		thumb.Width, thumb.Height = decodeResolution(posterURL)
		thumbs = append(thumbs, thumb)
	}
	return thumbs
}

// decodeResolution recovers the thumbnail resolution from the URL's last
// path segment, which is a base64-encoded filename like "1280x720.jpg".
func decodeResolution(thumbURL string) (width, height int) {
	name := urlBasename(thumbURL)
	if name == "" {
		return 0, 0
	}

	if rem := len(name) % 4; rem != 0 {
		name += strings.Repeat("=", 4-rem)
	}

	decoded, err := base64.StdEncoding.DecodeString(name)
	if err != nil {
		return 0, 0
	}

	return parseResolution(string(decoded))
}

// urlBasename returns the final path segment, without query or fragment.
func urlBasename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
