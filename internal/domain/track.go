package domain

import "time"

// Track represents an individual playable track extracted from a SoundCloud
// API response. StreamURL already carries the client_id query parameter, so
// it is usable as-is. A Track is immutable once emitted.
type Track struct {
	StreamURL  string `json:"stream_url"`
	Title      string `json:"title,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// Duration returns the track duration as a time.Duration.
func (t *Track) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Playlist represents an ordered collection of tracks extracted from a
// single soundcloud:// request. Track order matches the order in which the
// tracks appeared in the API response.
type Playlist struct {
	Source string   `json:"source"`
	Tracks []*Track `json:"tracks"`
}
