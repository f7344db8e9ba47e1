package stream

import "testing"

func TestPartitionTracks(t *testing.T) {
	tracks := []textTrack{
		{Language: "en", URL: "u1", AutoGenerated: false},
		{Language: "en", URL: "u2", AutoGenerated: true},
		{Language: "fr", URL: "u3"},
		{Language: "", URL: "u4"},
		{Language: "de", URL: ""},
	}

	subs, auto := partitionTracks(tracks)

	if len(subs) != 2 {
		t.Fatalf("subtitles cover %d languages, want 2", len(subs))
	}
	if len(subs["en"]) != 1 || subs["en"][0].URL != "u1" || subs["en"][0].Ext != "vtt" {
		t.Errorf("subtitles[en] = %+v", subs["en"])
	}
	if len(subs["fr"]) != 1 || subs["fr"][0].URL != "u3" {
		t.Errorf("subtitles[fr] = %+v", subs["fr"])
	}

	if len(auto) != 1 {
		t.Fatalf("automatic captions cover %d languages, want 1", len(auto))
	}
	if len(auto["en"]) != 1 || auto["en"][0].URL != "u2" {
		t.Errorf("automatic_captions[en] = %+v", auto["en"])
	}
}

func TestPartitionTracksOrderPerLanguage(t *testing.T) {
	tracks := []textTrack{
		{Language: "en", URL: "first"},
		{Language: "en", URL: "second"},
		{Language: "en", URL: "third"},
	}

	subs, _ := partitionTracks(tracks)

	got := subs["en"]
	if len(got) != 3 || got[0].URL != "first" || got[1].URL != "second" || got[2].URL != "third" {
		t.Errorf("subtitles[en] order = %+v", got)
	}
}

func TestPartitionTracksEmpty(t *testing.T) {
	subs, auto := partitionTracks(nil)
	if subs == nil || auto == nil {
		t.Fatal("maps must be non-nil even when there are no tracks")
	}
	if len(subs) != 0 || len(auto) != 0 {
		t.Errorf("expected empty maps, got %v / %v", subs, auto)
	}
}
