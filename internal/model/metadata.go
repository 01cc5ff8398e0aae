package model

// RecentTrack is one entry of the recently-played list.
type RecentTrack struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// NowPlaying is the normalized now-playing payload served at
// /api/now-playing. Missing upstream fields are already replaced with
// "Unknown ..." placeholders.
type NowPlaying struct {
	TrackID      string        `json:"trackId"`
	Title        string        `json:"title"`
	Artist       string        `json:"artist"`
	Album        string        `json:"album"`
	RecentTracks []RecentTrack `json:"recentTracks"`
}
