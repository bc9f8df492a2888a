// Package notify shows desktop notifications for track changes through
// org.freedesktop.Notifications.
package notify

// Urgency is the urgency hint of a notification. Values follow the
// freedesktop notification spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one message for the notification server.
type Notification struct {
	Title   string
	Body    string
	Icon    string // image path or icon name
	Timeout int32  // ms; -1 lets the server decide, 0 never expires
	// ReplacesID updates an earlier notification in place when non-zero.
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier delivers notifications. NowPlaying uses it to replace its
// previous message on every track change.
type Notifier interface {
	// Notify shows n and returns the server's id for it. Without a
	// notification server it returns 0 and no error.
	Notify(n Notification) (uint32, error)
	// Close withdraws the notification with the given id.
	Close(id uint32) error
}

// App identifies the sender: Name is the app_name argument and
// DesktopEntry the desktop-entry hint, omitted when empty.
type App struct {
	Name         string
	DesktopEntry string
}
