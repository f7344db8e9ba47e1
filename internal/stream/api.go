package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"streamgrab/internal/httputil"
)

const apiVersion = "1.4-private"

// videoData is the private video API payload. Missing fields unmarshal to
// zero values and degrade to absent output fields, never to errors.
type videoData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Created     string `json:"created"`
	Creator     struct {
		Name string `json:"name"`
		Mail string `json:"mail"`
		ID   string `json:"id"`
	} `json:"creator"`
	PosterImage  map[string]posterImage `json:"posterImage"`
	PlaybackURLs []playbackEntry        `json:"playbackUrls"`
	Media        struct {
		Duration string `json:"duration"`
	} `json:"media"`
	Metrics struct {
		Views    *int64 `json:"views"`
		Likes    *int64 `json:"likes"`
		Comments *int64 `json:"comments"`
	} `json:"metrics"`
}

type posterImage struct {
	URL string `json:"url"`
}

type playbackEntry struct {
	MimeType    string `json:"mimeType"`
	PlaybackURL string `json:"playbackUrl"`
}

type textTrack struct {
	Language      string `json:"language"`
	URL           string `json:"url"`
	AutoGenerated bool   `json:"autoGenerated"`
}

type textTrackList struct {
	Value []textTrack `json:"value"`
}

// apiURL joins the scraped gateway base with an API path and query.
func apiURL(apiBase, apiPath string, query url.Values) string {
	return strings.TrimRight(apiBase, "/") + apiPath + "?" + query.Encode()
}

// fetchVideo downloads the primary video metadata. Failure here aborts the
// whole extraction.
func (e *Extractor) fetchVideo(apiBase, videoID string, header http.Header) (*videoData, error) {
	u := apiURL(apiBase, "/videos/"+videoID, url.Values{
		"$expand":     []string{"creator,tokens,status,liveEvent,extensions"},
		"api-version": []string{apiVersion},
	})

	body, err := httputil.GetJSON(e.client, u, header)
	if err != nil {
		return nil, err
	}

	var data videoData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	return &data, nil
}

// fetchTextTracks downloads the subtitle track listing. Callers treat any
// error as a soft failure.
func (e *Extractor) fetchTextTracks(apiBase, videoID string, header http.Header) ([]textTrack, error) {
	u := apiURL(apiBase, "/videos/"+videoID+"/texttracks", url.Values{
		"api-version": []string{apiVersion},
	})

	body, err := httputil.GetJSON(e.client, u, header)
	if err != nil {
		return nil, err
	}

	var list textTrackList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parsing text tracks: %w", err)
	}

	return list.Value, nil
}
