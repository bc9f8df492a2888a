//go:build linux

package mpris

import "github.com/godbus/dbus/v5"

func dialSession() (Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return conn, nil
}
