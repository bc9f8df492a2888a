package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func memFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if err := fs.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, f, []byte("fake"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestArtProbe_Find(t *testing.T) {
	fs := memFs(t, "/music/album/01.flac", "/music/album/folder.jpg")

	got := NewArtProbe(fs).Find("/music/album/01.flac")
	if want := "file:///music/album/folder.jpg"; got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestArtProbe_NotFound(t *testing.T) {
	fs := memFs(t, "/music/album/01.flac", "/music/album/cover.jpg", "/music/album/folder.gif")

	if got := NewArtProbe(fs).Find("/music/album/01.flac"); got != "" {
		t.Errorf("Find() = %q, want empty string", got)
	}
}

func TestArtProbe_CaseInsensitive(t *testing.T) {
	fs := memFs(t, "/music/album/FOLDER.PNG")

	got := NewArtProbe(fs).Find("/music/album/01.mp3")
	if want := "file:///music/album/FOLDER.PNG"; got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestArtProbe_DeterministicChoice(t *testing.T) {
	fs := memFs(t, "/music/album/folder.png", "/music/album/folder.jpg", "/music/album/Folder.png")

	probe := NewArtProbe(fs)
	want := "file:///music/album/Folder.png"
	for range 5 {
		if got := probe.Find("/music/album/01.mp3"); got != want {
			t.Fatalf("Find() = %q, want %q", got, want)
		}
	}
}

func TestArtProbe_IgnoresDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/music/album/folder.jpg", 0o755); err != nil {
		t.Fatal(err)
	}

	if got := NewArtProbe(fs).Find("/music/album/01.mp3"); got != "" {
		t.Errorf("Find() = %q, want empty string", got)
	}
}

func TestArtProbe_MissingDirectory(t *testing.T) {
	if got := NewArtProbe(afero.NewMemMapFs()).Find("/nowhere/01.mp3"); got != "" {
		t.Errorf("Find() = %q, want empty string", got)
	}
}

func TestArtProbe_NilProbe(t *testing.T) {
	var p *ArtProbe
	if got := p.Find("/music/01.mp3"); got != "" {
		t.Errorf("Find() = %q, want empty string", got)
	}
}

func TestArtProbe_OsFs(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "folder.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := NewArtProbe(nil).Find(filepath.Join(dir, "track.mp3"))
	if want := "file://" + coverPath; got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}
