package stream

import "streamgrab/internal/media"

// partitionTracks splits text tracks into human-authored subtitles and
// auto-generated captions, keyed by language. Tracks missing a language or
// URL are dropped; per-language order follows the source listing.
func partitionTracks(tracks []textTrack) (subtitles, autoCaptions media.SubtitleMap) {
	subtitles = media.SubtitleMap{}
	autoCaptions = media.SubtitleMap{}

	for _, track := range tracks {
		if track.Language == "" || track.URL == "" {
			continue
		}
		target := subtitles
		if track.AutoGenerated {
			target = autoCaptions
		}
		target[track.Language] = append(target[track.Language], media.SubtitleTrack{
			Ext: "vtt",
			URL: track.URL,
		})
	}

	return subtitles, autoCaptions
}
