package mpris

import (
	"maps"
	"slices"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/sirupsen/logrus"
)

// property is a single readable property. A nil set makes it read-only.
type property struct {
	sig string
	get func() (any, error)
	set func(dbus.Variant) *dbus.Error
}

type propertyTable map[string]property

func fixed(v any) property {
	return property{
		sig: dbus.SignatureOf(v).String(),
		get: func() (any, error) { return v, nil },
	}
}

// writable accepts writes whose value has the property's type and
// otherwise ignores them.
func writable[T any](p property) property {
	p.set = func(v dbus.Variant) *dbus.Error {
		if _, ok := v.Value().(T); !ok {
			return prop.ErrInvalidArg
		}
		return nil
	}
	return p
}

func (t propertyTable) introspect() []introspect.Property {
	names := slices.Sorted(maps.Keys(t))
	out := make([]introspect.Property, 0, len(names))
	for _, name := range names {
		access := "read"
		if t[name].set != nil {
			access = "readwrite"
		}
		out = append(out, introspect.Property{Name: name, Type: t[name].sig, Access: access})
	}
	return out
}

// properties implements org.freedesktop.DBus.Properties over per-interface
// property tables.
type properties struct {
	ifaces map[string]propertyTable
	log    logrus.FieldLogger
}

func newProperties(ifaces map[string]propertyTable, log logrus.FieldLogger) *properties {
	return &properties{ifaces: ifaces, log: log}
}

func (p *properties) lookup(iface, name string) (property, *dbus.Error) {
	table, ok := p.ifaces[iface]
	if !ok {
		return property{}, prop.ErrIfaceNotFound
	}
	pr, ok := table[name]
	if !ok {
		return property{}, prop.ErrPropNotFound
	}
	return pr, nil
}

// Get returns the current value of a property.
func (p *properties) Get(iface, name string) (dbus.Variant, *dbus.Error) {
	pr, derr := p.lookup(iface, name)
	if derr != nil {
		return dbus.Variant{}, derr
	}
	v, err := pr.get()
	if err != nil {
		p.log.WithError(err).WithField("property", name).Warn("reading property")
		return dbus.Variant{}, dbus.MakeFailedError(err)
	}
	return dbus.MakeVariant(v), nil
}

// GetAll returns every readable property of iface. Properties that fail to
// read are left out.
func (p *properties) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	table, ok := p.ifaces[iface]
	if !ok {
		return nil, prop.ErrIfaceNotFound
	}
	out := make(map[string]dbus.Variant, len(table))
	for name, pr := range table {
		v, err := pr.get()
		if err != nil {
			p.log.WithError(err).WithField("property", name).Warn("reading property")
			continue
		}
		out[name] = dbus.MakeVariant(v)
	}
	return out, nil
}

// Set writes a property. Writes to read-only properties are rejected.
func (p *properties) Set(iface, name string, value dbus.Variant) *dbus.Error {
	pr, derr := p.lookup(iface, name)
	if derr != nil {
		return derr
	}
	if pr.set == nil {
		return prop.ErrReadOnly
	}
	return pr.set(value)
}
