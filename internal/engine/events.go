package engine

import "strconv"

// EventKind identifies an engine event or command token.
// Values match the DeaDBeeF message ids.
type EventKind uint32

const (
	EventNext            EventKind = 1
	EventPrev            EventKind = 2
	EventPlayCurrent     EventKind = 3
	EventPlayNum         EventKind = 4
	EventStop            EventKind = 5
	EventPause           EventKind = 6
	EventPlayRandom      EventKind = 7
	EventTerminate       EventKind = 8
	EventPlaylistRefresh EventKind = 9
	EventReinitSound     EventKind = 10
	EventConfigChanged   EventKind = 11
	EventTogglePause     EventKind = 12
	EventActivated       EventKind = 13
	EventPaused          EventKind = 14
	EventPlaylistChanged EventKind = 15
	EventVolumeChanged   EventKind = 16
	EventOutputChanged   EventKind = 17
	EventPlaylistSwitch  EventKind = 18
	EventSeek            EventKind = 19
	EventActionsChanged  EventKind = 20
	EventDSPChainChanged EventKind = 21
	EventSelChanged      EventKind = 22
	EventPluginsLoaded   EventKind = 23
	EventFocusSelection  EventKind = 24

	EventSongChanged       EventKind = 1000
	EventSongStarted       EventKind = 1001
	EventSongFinished      EventKind = 1002
	EventTrackInfoChanged  EventKind = 1004
	EventSeeked            EventKind = 1005
	EventTrackFocusCurrent EventKind = 1006
	EventCursorMoved       EventKind = 1007
)

var eventNames = map[EventKind]string{
	EventNext:              "NEXT",
	EventPrev:              "PREV",
	EventPlayCurrent:       "PLAY_CURRENT",
	EventPlayNum:           "PLAY_NUM",
	EventStop:              "STOP",
	EventPause:             "PAUSE",
	EventPlayRandom:        "PLAY_RANDOM",
	EventTerminate:         "TERMINATE",
	EventPlaylistRefresh:   "PLAYLIST_REFRESH",
	EventReinitSound:       "REINIT_SOUND",
	EventConfigChanged:     "CONFIGCHANGED",
	EventTogglePause:       "TOGGLE_PAUSE",
	EventActivated:         "ACTIVATED",
	EventPaused:            "PAUSED",
	EventPlaylistChanged:   "PLAYLISTCHANGED",
	EventVolumeChanged:     "VOLUMECHANGED",
	EventOutputChanged:     "OUTPUTCHANGED",
	EventPlaylistSwitch:    "PLAYLISTSWITCHED",
	EventSeek:              "SEEK",
	EventActionsChanged:    "ACTIONSCHANGED",
	EventDSPChainChanged:   "DSPCHAINCHANGED",
	EventSelChanged:        "SELCHANGED",
	EventPluginsLoaded:     "PLUGINSLOADED",
	EventFocusSelection:    "FOCUS_SELECTION",
	EventSongChanged:       "SONGCHANGED",
	EventSongStarted:       "SONGSTARTED",
	EventSongFinished:      "SONGFINISHED",
	EventTrackInfoChanged:  "TRACKINFOCHANGED",
	EventSeeked:            "SEEKED",
	EventTrackFocusCurrent: "TRACKFOCUSCURRENT",
	EventCursorMoved:       "CURSOR_MOVED",
}

// String returns the event name, or its number for unknown kinds.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "EventKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// Known reports whether k is an event kind the bridge recognizes.
func (k EventKind) Known() bool {
	_, ok := eventNames[k]
	return ok
}

// RawEvent is an event as delivered by the engine. Context is only
// meaningful for kinds that carry a payload.
type RawEvent struct {
	Kind    EventKind
	Context any
	P1      uint32
	P2      uint32
}

// Event is a decoded engine event with a payload typed for its kind.
type Event struct {
	Kind    EventKind
	Payload Payload
	P1      uint32
	P2      uint32
}

// Payload is implemented by TrackChange, TrackEvent and PlayPosition.
type Payload interface {
	payload()
}

// TrackChange is the payload of SONGCHANGED.
type TrackChange struct {
	From             Track
	To               Track
	PlayTime         float32
	StartedTimestamp int64
}

// TrackEvent is the payload of events about a single track.
type TrackEvent struct {
	Track Track
}

// PlayPosition is the payload of SEEKED.
type PlayPosition struct {
	Track    Track
	Position float32
}

func (TrackChange) payload()  {}
func (TrackEvent) payload()   {}
func (PlayPosition) payload() {}
