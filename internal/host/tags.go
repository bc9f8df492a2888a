package host

import (
	"fmt"
	"time"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/player"
)

// Keys of the tag records built for each track.
const (
	tagArtist      = "artist"
	tagAlbumArtist = "album artist"
	tagAlbum       = "album"
	tagTitle       = "title"
	tagURI         = ":URI"
	tagDuration    = ":DURATION"
)

// InfoReader reads the description of an audio file.
type InfoReader func(path string) (*player.TrackInfo, error)

// ReadTags reads path and returns the tag records the host would attach
// to it.
func ReadTags(path string) (*engine.TagRecord, error) {
	return readTags(player.ExtractFullMetadata, path)
}

func readTags(read InfoReader, path string) (*engine.TagRecord, error) {
	info, err := read(path)
	if info == nil {
		return nil, err
	}
	return records(path, info), err
}

// records links the non-empty fields of info into a tag record chain.
func records(path string, info *player.TrackInfo) *engine.TagRecord {
	pairs := [][2]string{
		{tagArtist, info.Artist},
		{tagAlbumArtist, info.AlbumArtist},
		{tagAlbum, info.Album},
		{tagTitle, info.Title},
		{tagURI, path},
	}
	if info.Duration > 0 {
		pairs = append(pairs, [2]string{tagDuration, formatDuration(info.Duration)})
	}

	var head *engine.TagRecord
	for i := len(pairs) - 1; i >= 0; i-- {
		if pairs[i][1] == "" {
			continue
		}
		head = &engine.TagRecord{Key: pairs[i][0], Value: pairs[i][1], Next: head}
	}
	return head
}

// formatDuration renders d as m:ss, or h:mm:ss from one hour.
func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
