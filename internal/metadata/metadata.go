// Package metadata converts engine tag records into MPRIS metadata.
package metadata

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/empress/internal/engine"
)

// MPRIS metadata keys.
const (
	KeyTrackID     = "mpris:trackid"
	KeyLength      = "mpris:length"
	KeyArtURL      = "mpris:artUrl"
	KeyArtist      = "xesam:artist"
	KeyAlbumArtist = "xesam:albumArtist"
	KeyAlbum       = "xesam:album"
	KeyTitle       = "xesam:title"
	KeyURL         = "xesam:url"
)

// Engine tag keys, compared case-insensitively.
const (
	tagArtist      = "artist"
	tagAlbumArtist = "album artist"
	tagAlbum       = "album"
	tagTitle       = "title"
	tagURI         = ":uri"
	tagDuration    = ":duration"
)

const (
	fileScheme    = "file://"
	trackIDPrefix = "/org/mpris/MediaPlayer2/tracks/"
)

// Metadata is an MPRIS metadata dictionary (a{sv}).
type Metadata map[string]dbus.Variant

// TrackID returns the MPRIS track id for an engine track.
func TrackID(t engine.Track) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s%d", trackIDPrefix, uint64(t)))
}

// Extract builds the metadata of a track from its copied tag records.
// Unknown keys are dropped and fields that fail to parse are omitted.
// A nil probe disables cover-art lookup.
func Extract(t engine.Track, tags []engine.Tag, probe *ArtProbe) Metadata {
	md := Metadata{KeyTrackID: dbus.MakeVariant(TrackID(t))}

	var artists, albumArtists []string
	for _, tag := range tags {
		switch strings.ToLower(tag.Key) {
		case tagArtist:
			artists = append(artists, tag.Value)
		case tagAlbumArtist:
			albumArtists = append(albumArtists, tag.Value)
		case tagAlbum:
			md[KeyAlbum] = dbus.MakeVariant(tag.Value)
		case tagTitle:
			md[KeyTitle] = dbus.MakeVariant(tag.Value)
		case tagURI:
			path, uri := FileURI(tag.Value)
			md[KeyURL] = dbus.MakeVariant(uri)
			if art := probe.Find(path); art != "" {
				md[KeyArtURL] = dbus.MakeVariant(art)
			}
		case tagDuration:
			if us, err := ParseDuration(tag.Value); err == nil {
				md[KeyLength] = dbus.MakeVariant(us)
			}
		}
	}
	if len(artists) > 0 {
		md[KeyArtist] = dbus.MakeVariant(artists)
	}
	if len(albumArtists) > 0 {
		md[KeyAlbumArtist] = dbus.MakeVariant(albumArtists)
	}
	return md
}

// FileURI returns the filesystem path of an engine URI and its file://
// form. Values without the file:// prefix are treated as plain paths.
func FileURI(value string) (path, uri string) {
	if p, ok := strings.CutPrefix(value, fileScheme); ok {
		return p, value
	}
	return value, fileScheme + value
}
