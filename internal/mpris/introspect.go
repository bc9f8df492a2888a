package mpris

import (
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
)

var seekedSignal = introspect.Signal{
	Name: "Seeked",
	Args: []introspect.Arg{{Name: "Position", Type: "x"}},
}

func introspectNode(root *rootAdapter, rootProps propertyTable, player *playerAdapter, playerProps propertyTable) *introspect.Node {
	return &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       RootInterface,
				Methods:    introspect.Methods(root),
				Properties: rootProps.introspect(),
			},
			{
				Name:       PlayerInterface,
				Methods:    introspect.Methods(player),
				Signals:    []introspect.Signal{seekedSignal},
				Properties: playerProps.introspect(),
			},
		},
	}
}
