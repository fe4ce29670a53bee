// Package udev provides a read-only view of the Linux device tree for
// matching devices by kernel name, subsystem and parentage.
package udev

import "strings"

// Device is a handle into the device tree. Syspath is the stable identity
// key; two handles refer to the same device iff their syspaths are equal.
type Device struct {
	Syspath   string
	Sysname   string
	Subsystem string
	Driver    string            // empty when no driver is bound
	Devnode   string            // /dev node, empty when the device has none
	Attrs     map[string]string // sysfs attributes
	Parent    *Device
}

// Attr returns the named sysfs attribute.
func (d *Device) Attr(name string) (string, bool) {
	v, ok := d.Attrs[name]
	return v, ok
}

// Name returns the device's "name" attribute.
func (d *Device) Name() (string, bool) {
	return d.Attr("name")
}

// Criteria selects devices out of a tree snapshot. Zero-valued fields match
// everything. Parent matches the given device itself and all of its
// descendants, like libudev's match_parent; callers that want direct
// children only must filter the result themselves.
type Criteria struct {
	Sysname   string
	Subsystem string
	Parent    *Device
}

func (c Criteria) matches(d *Device) bool {
	if c.Sysname != "" && d.Sysname != c.Sysname {
		return false
	}
	if c.Subsystem != "" && d.Subsystem != c.Subsystem {
		return false
	}
	if c.Parent != nil {
		if d.Syspath != c.Parent.Syspath &&
			!strings.HasPrefix(d.Syspath, c.Parent.Syspath+"/") {
			return false
		}
	}
	return true
}

// Finder matches devices against criteria. Each call is an independent
// snapshot of the tree; an empty result is not an error.
type Finder interface {
	Find(c Criteria) ([]*Device, error)
}
