// Package soundcloud turns soundcloud:// request URIs into ordered lists of
// playable tracks by streaming the SoundCloud JSON API response through an
// event-driven parser.
package soundcloud

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the URI scheme handled by this package.
const Scheme = "soundcloud://"

const defaultBaseURL = "https://api.soundcloud.com"

var ErrUnrecognizedRequest = errors.New("unrecognized soundcloud request")

// Resolver maps logical soundcloud:// requests to concrete API endpoint
// URLs. The client ID is appended to every endpoint as a query parameter and
// must never appear in log output.
type Resolver struct {
	baseURL  string
	clientID string
}

func NewResolver(clientID string) *Resolver {
	return &Resolver{
		baseURL:  defaultBaseURL,
		clientID: clientID,
	}
}

// Resolve maps a request URI to the API endpoint that serves it. Accepted
// forms, with or without the soundcloud:// scheme prefix:
//
//	track/<track-id>
//	playlist/<playlist-id>
//	user/<user-id>
//	search/<query>
//	url/<url or path of a soundcloud page>
//
// Any other shape returns ErrUnrecognizedRequest; no network call is made.
func (r *Resolver) Resolve(uri string) (string, error) {
	rest := strings.TrimPrefix(uri, Scheme)

	switch {
	case strings.HasPrefix(rest, "track/"):
		id := strings.TrimPrefix(rest, "track/")
		return fmt.Sprintf("%s/tracks/%s.json?client_id=%s", r.baseURL, id, r.clientID), nil

	case strings.HasPrefix(rest, "playlist/"):
		id := strings.TrimPrefix(rest, "playlist/")
		return fmt.Sprintf("%s/playlists/%s.json?client_id=%s", r.baseURL, id, r.clientID), nil

	case strings.HasPrefix(rest, "user/"):
		id := strings.TrimPrefix(rest, "user/")
		return fmt.Sprintf("%s/users/%s/tracks.json?client_id=%s", r.baseURL, id, r.clientID), nil

	case strings.HasPrefix(rest, "search/"):
		query := strings.TrimPrefix(rest, "search/")
		return fmt.Sprintf("%s/tracks.json?q=%s&client_id=%s", r.baseURL, url.QueryEscape(query), r.clientID), nil

	case strings.HasPrefix(rest, "url/"):
		return r.resolveURL(strings.TrimPrefix(rest, "url/")), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnrecognizedRequest, uri)
}

// resolveURL wraps a soundcloud page reference in a resolver-service call.
// The reference may be a full URL, a bare host+path, or just a path on
// soundcloud.com. The HTTP client follows the resolver's redirect to the
// right resource.
func (r *Resolver) resolveURL(ref string) string {
	var u string
	switch {
	case strings.HasPrefix(ref, "https://"):
		u = ref
	case strings.HasPrefix(ref, "soundcloud.com"):
		u = "https://" + ref
	default:
		// Assume it's just a path on soundcloud.com.
		u = "https://soundcloud.com/" + ref
	}

	return fmt.Sprintf("%s/resolve.json?url=%s&client_id=%s", r.baseURL, url.QueryEscape(u), r.clientID)
}
