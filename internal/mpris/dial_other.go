//go:build !linux

package mpris

func dialSession() (Conn, error) {
	return nil, ErrUnsupportedPlatform
}
