package player

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo describes an audio file.
type TrackInfo struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Year        int
	Track       int
	Genre       string
	Format      string
	Duration    time.Duration
}

// ReadTrackInfo reads the tags of an audio file.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}
	track, _ := m.Track()

	return &TrackInfo{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Year:        m.Year(),
		Track:       track,
		Genre:       m.Genre(),
		Format:      string(m.FileType()),
	}, nil
}

// ExtractFullMetadata reads tags and decodes the file to measure its
// duration. Files without readable tags get a title from their name.
func ExtractFullMetadata(path string) (*TrackInfo, error) {
	info, err := ReadTrackInfo(path)
	if err != nil {
		info = &TrackInfo{
			Path:  path,
			Title: filepath.Base(path),
		}
	}

	duration, err := getAudioDuration(path)
	if err != nil {
		return info, err
	}
	info.Duration = duration
	return info, nil
}

func getAudioDuration(path string) (time.Duration, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}
