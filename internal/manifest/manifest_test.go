package manifest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"streamgrab/internal/httputil"
)

const masterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360,CODECS="avc1.4d401e,mp4a.40.2"
low/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2500000,RESOLUTION=1280x720,CODECS="avc1.4d401f,mp4a.40.2"
mid/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=4500000,RESOLUTION=1920x1080
https://cdn.example.com/high/index.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXTINF:6.0,
segment0.ts
#EXT-X-ENDLIST
`

const sampleMPD = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" mediaPresentationDuration="PT1M" minBufferTime="PT1.5S" profiles="urn:mpeg:dash:profile:isoff-on-demand:2011">
  <Period>
    <AdaptationSet mimeType="video/mp4" segmentAlignment="true">
      <Representation id="video-720" bandwidth="2500000" width="1280" height="720" codecs="avc1.4d401f"></Representation>
      <Representation id="video-1080" bandwidth="4500000" width="1920" height="1080" codecs="avc1.640028"></Representation>
    </AdaptationSet>
    <AdaptationSet mimeType="audio/mp4" segmentAlignment="true">
      <Representation id="audio" bandwidth="128000" codecs="mp4a.40.2"></Representation>
    </AdaptationSet>
  </Period>
</MPD>
`

func TestForMIME(t *testing.T) {
	set := NewSet(httputil.NewClient(nil))

	tests := []struct {
		mime string
		want bool
	}{
		{MimeHLS, true},
		{MimeDASH, true},
		{MimeMSS, true},
		{"video/mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got := set.ForMIME(tt.mime)
			if (got != nil) != tt.want {
				t.Errorf("ForMIME(%q) = %v, want resolver: %v", tt.mime, got, tt.want)
			}
		})
	}
}

func TestHLSResolveMaster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(masterPlaylist))
	}))
	defer server.Close()

	r := &hlsResolver{client: httputil.NewClient(nil)}
	formats, err := r.Resolve(server.URL+"/manifest/index.m3u8", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if len(formats) != 3 {
		t.Fatalf("got %d formats, want 3", len(formats))
	}

	if formats[0].Height != 360 || formats[0].Bitrate != 800 {
		t.Errorf("variant 0 = %+v, want 640x360 @ 800", formats[0])
	}
	if formats[0].Codecs != "avc1.4d401e,mp4a.40.2" {
		t.Errorf("variant 0 codecs = %q", formats[0].Codecs)
	}

	// Relative URI resolved against the manifest URL.
	want := server.URL + "/manifest/low/index.m3u8"
	if formats[0].URL != want {
		t.Errorf("variant 0 URL = %q, want %q", formats[0].URL, want)
	}

	// Absolute URI kept as is.
	if formats[2].URL != "https://cdn.example.com/high/index.m3u8" {
		t.Errorf("variant 2 URL = %q", formats[2].URL)
	}

	for _, f := range formats {
		if f.Protocol != "m3u8_native" || f.Ext != "mp4" {
			t.Errorf("format %q protocol/ext = %q/%q", f.ID, f.Protocol, f.Ext)
		}
	}
}

func TestHLSResolveDuplicateBandwidth(t *testing.T) {
	// Two variants in the same bandwidth bucket (e.g. video + audio-only
	// renditions) must not share a format id.
	playlist := `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360
video/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=800000
audio/index.m3u8
`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(playlist))
	}))
	defer server.Close()

	r := &hlsResolver{client: httputil.NewClient(nil)}
	formats, err := r.Resolve(server.URL+"/index.m3u8", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if len(formats) != 2 {
		t.Fatalf("got %d formats, want 2", len(formats))
	}
	if formats[0].ID == formats[1].ID {
		t.Errorf("duplicate format id %q", formats[0].ID)
	}
	if formats[0].ID != "hls-800" || formats[1].ID != "hls-800-1" {
		t.Errorf("format ids = %q, %q", formats[0].ID, formats[1].ID)
	}
}

func TestHLSResolveMediaPlaylist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mediaPlaylist))
	}))
	defer server.Close()

	r := &hlsResolver{client: httputil.NewClient(nil)}
	formats, err := r.Resolve(server.URL+"/index.m3u8", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if len(formats) != 1 {
		t.Fatalf("got %d formats, want 1", len(formats))
	}
	if formats[0].URL != server.URL+"/index.m3u8" {
		t.Errorf("media playlist URL = %q", formats[0].URL)
	}
}

func TestHLSResolveFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	}))
	defer server.Close()

	r := &hlsResolver{client: httputil.NewClient(nil)}
	if _, err := r.Resolve(server.URL+"/index.m3u8", nil); err == nil {
		t.Error("expected error on 401 manifest fetch")
	}
}

func TestDASHResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleMPD))
	}))
	defer server.Close()

	r := &dashResolver{client: httputil.NewClient(nil)}
	formats, err := r.Resolve(server.URL+"/manifest.mpd", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if len(formats) != 3 {
		t.Fatalf("got %d formats, want 3", len(formats))
	}

	byID := map[string]int{}
	for i, f := range formats {
		byID[f.ID] = i
	}

	hd, ok := byID["dash-video-1080"]
	if !ok {
		t.Fatalf("missing dash-video-1080 in %v", byID)
	}
	if formats[hd].Width != 1920 || formats[hd].Height != 1080 || formats[hd].Bitrate != 4500 {
		t.Errorf("1080p representation = %+v", formats[hd])
	}

	audio, ok := byID["dash-audio"]
	if !ok {
		t.Fatalf("missing dash-audio in %v", byID)
	}
	if formats[audio].Height != 0 || formats[audio].Bitrate != 128 {
		t.Errorf("audio representation = %+v", formats[audio])
	}

	for _, f := range formats {
		if f.Protocol != "dash" || f.URL != server.URL+"/manifest.mpd" {
			t.Errorf("format %q protocol/URL = %q/%q", f.ID, f.Protocol, f.URL)
		}
	}
}

func TestMSSResolve(t *testing.T) {
	r := &mssResolver{}
	formats, err := r.Resolve("https://example.com/video.ism/Manifest", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(formats) != 1 {
		t.Fatalf("got %d formats, want 1", len(formats))
	}
	f := formats[0]
	if f.ID != "mss" || f.Protocol != "ism" || f.URL != "https://example.com/video.ism/Manifest" {
		t.Errorf("mss format = %+v", f)
	}
}
