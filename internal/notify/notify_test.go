package notify

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/metadata"
)

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 || UrgencyNormal != 1 || UrgencyCritical != 2 {
		t.Errorf("urgency values = %d/%d/%d, want 0/1/2", UrgencyLow, UrgencyNormal, UrgencyCritical)
	}
}

type recorder struct {
	sent []Notification
	err  error
}

func (r *recorder) Notify(n Notification) (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	return uint32(len(r.sent)) + 10, nil
}

func (r *recorder) Close(uint32) error { return nil }

func testAPI() *engine.API {
	tracks := map[engine.Track]*engine.TagRecord{
		1: {Key: "title", Value: "One", Next: &engine.TagRecord{Key: "artist", Value: "Band",
			Next: &engine.TagRecord{Key: "album", Value: "LP", Next: &engine.TagRecord{Key: ":URI", Value: "/music/lp/1.flac"}}}},
		2: {Key: "artist", Value: "Band"},
	}
	return &engine.API{
		MetadataHead: func(t engine.Track) *engine.TagRecord { return tracks[t] },
		Lock:         func() {},
		Unlock:       func() {},
	}
}

func songChanged(to engine.Track) engine.RawEvent {
	return engine.RawEvent{Kind: engine.EventSongChanged, Context: engine.TrackChange{To: to}}
}

func TestNowPlaying(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/music/lp/folder.jpg", []byte("jpeg"), 0o644))
	log, _ := test.NewNullLogger()
	rec := &recorder{}
	np := NewNowPlaying(rec, testAPI(), metadata.NewArtProbe(fs), 3000, log)

	np.Handle(songChanged(1))
	np.Handle(engine.RawEvent{Kind: engine.EventPaused, P1: 1})
	np.Handle(songChanged(0))
	np.Handle(songChanged(2))

	require.Len(t, rec.sent, 2)
	assert.Equal(t, Notification{
		Title:   "One",
		Body:    "Band - LP",
		Icon:    "/music/lp/folder.jpg",
		Timeout: 3000,
		Urgency: UrgencyLow,
	}, rec.sent[0])
	assert.Equal(t, "Unknown track", rec.sent[1].Title)
	assert.Equal(t, "Band", rec.sent[1].Body)
	assert.Equal(t, uint32(11), rec.sent[1].ReplacesID)
}

func TestNowPlaying_Errors(t *testing.T) {
	log, hook := test.NewNullLogger()
	rec := &recorder{err: errors.New("no notification daemon")}
	np := NewNowPlaying(rec, testAPI(), nil, -1, log)

	np.Handle(songChanged(1))
	np.Handle(engine.RawEvent{Kind: engine.EventSongChanged})
	assert.Len(t, hook.Entries, 1)

	np = NewNowPlaying(rec, &engine.API{}, nil, -1, log)
	np.Handle(songChanged(1))
	assert.Len(t, hook.Entries, 2)
}
