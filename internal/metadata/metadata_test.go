package metadata

import (
	"regexp"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/empress/internal/engine"
)

func tags(pairs ...string) []engine.Tag {
	out := make([]engine.Tag, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, engine.Tag{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func value(t *testing.T, md Metadata, key string) any {
	t.Helper()
	v, ok := md[key]
	if !ok {
		t.Fatalf("metadata has no %q: %v", key, md)
	}
	return v.Value()
}

func TestExtract_Mapping(t *testing.T) {
	fs := memFs(t, "/music/album/folder.jpg")
	md := Extract(12, tags(
		"artist", "Artist",
		"album artist", "Album Artist",
		"album", "Album",
		"title", "Title",
		":URI", "/music/album/01.flac",
		":DURATION", "3:25",
	), NewArtProbe(fs))

	assert.Equal(t, dbus.ObjectPath("/org/mpris/MediaPlayer2/tracks/12"), value(t, md, KeyTrackID))
	assert.Equal(t, []string{"Artist"}, value(t, md, KeyArtist))
	assert.Equal(t, []string{"Album Artist"}, value(t, md, KeyAlbumArtist))
	assert.Equal(t, "Album", value(t, md, KeyAlbum))
	assert.Equal(t, "Title", value(t, md, KeyTitle))
	assert.Equal(t, "file:///music/album/01.flac", value(t, md, KeyURL))
	assert.Equal(t, "file:///music/album/folder.jpg", value(t, md, KeyArtURL))
	assert.Equal(t, int64(180_000_000), value(t, md, KeyLength))
}

func TestExtract_CaseInsensitiveKeys(t *testing.T) {
	for _, key := range []string{"Artist", "ARTIST", "artist", "aRtIsT"} {
		md := Extract(1, tags(key, "X"), nil)
		assert.Equal(t, []string{"X"}, value(t, md, KeyArtist), "key %q", key)
	}
}

func TestExtract_MultipleArtists(t *testing.T) {
	md := Extract(1, tags("artist", "A", "ARTIST", "B"), nil)
	assert.Equal(t, []string{"A", "B"}, value(t, md, KeyArtist))
}

func TestExtract_UnknownKeysDropped(t *testing.T) {
	md := Extract(1, tags("genre", "Rock", "year", "1999", ":FILETYPE", "FLAC"), nil)
	assert.Len(t, md, 1)
	assert.Contains(t, md, KeyTrackID)
}

func TestExtract_MalformedDurationSkipped(t *testing.T) {
	md := Extract(1, tags(":duration", "1:zz", "title", "Still here"), nil)
	assert.NotContains(t, md, KeyLength)
	assert.Equal(t, "Still here", value(t, md, KeyTitle))
}

func TestExtract_URIAlreadyFileScheme(t *testing.T) {
	fs := memFs(t, "/music/folder.png")
	md := Extract(1, tags(":uri", "file:///music/song.mp3"), NewArtProbe(fs))
	assert.Equal(t, "file:///music/song.mp3", value(t, md, KeyURL))
	assert.Equal(t, "file:///music/folder.png", value(t, md, KeyArtURL))
}

func TestExtract_NoArt(t *testing.T) {
	md := Extract(1, tags(":uri", "/music/song.mp3"), NewArtProbe(memFs(t)))
	assert.NotContains(t, md, KeyArtURL)
	assert.Equal(t, "file:///music/song.mp3", value(t, md, KeyURL))
}

func TestExtract_TrackIDPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^/org/mpris/MediaPlayer2/tracks/[0-9]+$`)
	for _, tr := range []engine.Track{1, 42, 1 << 40, ^engine.Track(0)} {
		md := Extract(tr, nil, nil)
		id, ok := value(t, md, KeyTrackID).(dbus.ObjectPath)
		if !ok {
			t.Fatalf("trackid has type %T", md[KeyTrackID].Value())
		}
		assert.Regexp(t, pattern, string(id))
		assert.True(t, id.IsValid(), "trackid %q is not a valid object path", id)
	}
}

func TestFileURI(t *testing.T) {
	tests := []struct {
		in, path, uri string
	}{
		{"/a/b.mp3", "/a/b.mp3", "file:///a/b.mp3"},
		{"file:///a/b.mp3", "/a/b.mp3", "file:///a/b.mp3"},
	}
	for _, tt := range tests {
		path, uri := FileURI(tt.in)
		if path != tt.path || uri != tt.uri {
			t.Errorf("FileURI(%q) = (%q, %q), want (%q, %q)", tt.in, path, uri, tt.path, tt.uri)
		}
	}
}
