package soundcloud

import (
	"errors"
	"strconv"

	"github.com/creachadair/jtree"

	"github.com/jaki95/soundcloud-playlist/internal/domain"
)

// ErrTruncated reports that the event stream ended while still inside a
// track object.
var ErrTruncated = errors.New("truncated response: document ended inside a track object")

type fieldKey int

const (
	keyOther fieldKey = iota
	keyDuration
	keyTitle
	keyStreamURL
)

// extractor is a jtree.Handler that collects one domain.Track per
// stream_url-bearing JSON object, without building a document tree.
//
// trackDepth is the nesting level relative to the object that produced the
// last stream_url value: 0 means no usable track is in progress; seeing a
// stream_url sets it to 1, nested object opens push it higher, and the close
// that brings it back from 1 marks the true end of the track object. This
// works unchanged for a single-track root, an array of tracks, and playlist
// wrappers that nest sub-objects (e.g. a user block) inside each track.
type extractor struct {
	clientID string

	key        fieldKey
	trackDepth int

	streamURL  string
	title      string
	durationMS int64

	tracks []*domain.Track
}

func newExtractor(clientID string) *extractor {
	return &extractor{clientID: clientID}
}

func (e *extractor) BeginObject(jtree.Anchor) error {
	if e.trackDepth > 0 {
		e.trackDepth++
	}
	return nil
}

func (e *extractor) EndObject(jtree.Anchor) error {
	switch {
	case e.trackDepth > 1:
		// Still inside a sub-object of the current track.
		e.trackDepth--
	case e.trackDepth == 1:
		// The track object itself just closed.
		e.emit()
	}
	// trackDepth == 0: a wrapper object that is not a track.
	return nil
}

func (e *extractor) BeginArray(jtree.Anchor) error { return nil }
func (e *extractor) EndArray(jtree.Anchor) error   { return nil }

func (e *extractor) BeginMember(loc jtree.Anchor) error {
	name, err := jtree.Unquote(loc.Text())
	if err != nil {
		return err
	}
	switch string(name) {
	case "duration":
		e.key = keyDuration
	case "title":
		e.key = keyTitle
	case "stream_url":
		e.key = keyStreamURL
	default:
		e.key = keyOther
	}
	return nil
}

func (e *extractor) EndMember(jtree.Anchor) error { return nil }

func (e *extractor) Value(loc jtree.Anchor) error {
	switch loc.Token() {
	case jtree.String:
		text, err := jtree.Unquote(loc.Text())
		if err != nil {
			return err
		}
		switch e.key {
		case keyTitle:
			e.title = string(text)
		case keyStreamURL:
			e.streamURL = string(text)
			e.trackDepth = 1
		}
	case jtree.Integer:
		if e.key == keyDuration {
			v, err := strconv.ParseInt(string(loc.Text()), 10, 64)
			if err != nil {
				return err
			}
			e.durationMS = v
		}
	}
	return nil
}

func (e *extractor) EndOfInput(jtree.Anchor) {}

// emit finalizes the in-progress track and resets the accumulator. The
// stream URL from the API lacks the access credential, so it is appended
// here.
func (e *extractor) emit() {
	e.tracks = append(e.tracks, &domain.Track{
		StreamURL:  e.streamURL + "?client_id=" + e.clientID,
		Title:      e.title,
		DurationMS: e.durationMS,
	})

	e.trackDepth = 0
	e.streamURL = ""
	e.title = ""
	e.durationMS = 0
}

// finish reports ErrTruncated if the document ended while a track object was
// still open. A well-formed document always unwinds trackDepth to zero.
func (e *extractor) finish() error {
	if e.trackDepth != 0 {
		return ErrTruncated
	}
	return nil
}
