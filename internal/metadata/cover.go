package metadata

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// coverNames lists the album art filenames recognized next to a track,
// compared case-insensitively.
var coverNames = []string{"folder.jpg", "folder.png"}

// ArtProbe looks up folder art for tracks on a filesystem.
type ArtProbe struct {
	fs afero.Fs
}

// NewArtProbe returns a probe reading from fs, or the OS filesystem when fs is nil.
func NewArtProbe(fs afero.Fs) *ArtProbe {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ArtProbe{fs: fs}
}

// Find returns a file:// URI for the folder art in the track's directory,
// or an empty string when there is none. When several candidates match,
// the lexically smallest filename wins.
func (p *ArtProbe) Find(trackPath string) string {
	if p == nil || trackPath == "" {
		return ""
	}
	dir := filepath.Dir(trackPath)
	entries, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		return ""
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(coverNames, strings.ToLower(e.Name())) {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	slices.Sort(candidates)
	return fileScheme + filepath.Join(dir, candidates[0])
}
