//go:build !linux

package notify

// New returns a no-op notifier on non-Linux platforms.
func New(_ App) Notifier {
	return &stubNotifier{}
}
