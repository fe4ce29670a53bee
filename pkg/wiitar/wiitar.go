// Package wiitar resolves a Wiimote with an attached guitar into the three
// kernel input endpoints that feed the remapper: the wiimote's own buttons,
// the guitar, and the accelerometer.
//
// Resolution starts from a single kernel name (e.g. "input19"), walks up to
// the owning hid-wiimote device, then back down through its input-class
// children to the event nodes. The device tree is queried as an external
// read-only oracle; no graph is held between steps.
package wiitar

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ticky/roadii/pkg/udev"
)

const (
	// The hid-wiimote driver exposes an extension attribute, but it is not
	// readable once the guitar is mounted, so the display name is the only
	// identity we can check.
	defaultMarker = "Wii"
	defaultSuffix = "Guitar"

	parentSubsystem = "hid"
	parentDriver    = "wiimote"

	inputSubsystem = "input"
	eventPrefix    = "event"
)

// Role identifies one of the three logical input devices of a wiitar.
type Role int

const (
	RoleWiimote Role = iota
	RoleGuitar
	RoleAccel
)

// String returns the role's short name.
func (r Role) String() string {
	switch r {
	case RoleWiimote:
		return "wiimote"
	case RoleGuitar:
		return "guitar"
	case RoleAccel:
		return "accelerometer"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// roleNames maps the input-core device names reported by the kernel's
// hid-wiimote driver to roles. These strings are constants in the kernel
// and unlikely to change, if at all.
var roleNames = map[string]Role{
	"Nintendo Wii Remote":               RoleWiimote,
	"Nintendo Wii Remote Guitar":        RoleGuitar,
	"Nintendo Wii Remote Accelerometer": RoleAccel,
}

// Parts holds the resolved event devices, one per role. A Parts value is
// only ever returned complete; it is never mutated after Resolve returns.
type Parts struct {
	Wiimote *udev.Device
	Guitar  *udev.Device
	Accel   *udev.Device
}

// Complete reports whether every role has been resolved.
func (p *Parts) Complete() bool {
	return p.Wiimote != nil && p.Guitar != nil && p.Accel != nil
}

// Missing names the unresolved roles.
func (p *Parts) Missing() []string {
	var out []string
	if p.Wiimote == nil {
		out = append(out, RoleWiimote.String())
	}
	if p.Guitar == nil {
		out = append(out, RoleGuitar.String())
	}
	if p.Accel == nil {
		out = append(out, RoleAccel.String())
	}
	return out
}

func (p *Parts) slot(r Role) **udev.Device {
	switch r {
	case RoleWiimote:
		return &p.Wiimote
	case RoleGuitar:
		return &p.Guitar
	default:
		return &p.Accel
	}
}

// Resolver locates wiitar input devices through a udev.Finder.
type Resolver struct {
	Finder udev.Finder

	// Log receives the confirmation line once the wiimote/guitar pair is
	// validated. Nil disables it.
	Log *slog.Logger

	// Marker and Suffix override the identity check applied to the guitar
	// device's name attribute. Vendor strings vary in prefix, so the check
	// is contains-marker plus ends-with-suffix rather than full equality.
	// Empty values fall back to "Wii" and "Guitar".
	Marker string
	Suffix string
}

// Resolve walks the device tree from kernelName to a complete Parts value.
// The pipeline is strictly linear: locate the guitar, validate its identity,
// validate its parent, classify the parent's input children, and descend
// each to its event node. Any failed stage aborts the whole resolution.
func (r *Resolver) Resolve(kernelName string) (*Parts, error) {
	guitar, err := r.lookup(kernelName)
	if err != nil {
		return nil, err
	}

	if err := r.checkIdentity(guitar); err != nil {
		return nil, err
	}

	wiimote, err := r.checkParent(guitar)
	if err != nil {
		return nil, err
	}

	if r.Log != nil {
		r.Log.Info("found a wiimote with a guitar attached",
			slog.String("wiimote", wiimote.Sysname),
			slog.String("guitar", guitar.Sysname))
	}

	parts := &Parts{}
	if err := r.classifySiblings(wiimote, parts); err != nil {
		return nil, err
	}

	if !parts.Complete() {
		return nil, fmt.Errorf("%w: missing %s",
			ErrIncomplete, strings.Join(parts.Missing(), ", "))
	}
	return parts, nil
}

func (r *Resolver) lookup(kernelName string) (*udev.Device, error) {
	matches, err := r.Finder.Find(udev.Criteria{Sysname: kernelName})
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", kernelName, err)
	}
	if len(matches) != 1 {
		return nil, fmt.Errorf("%w: %q matched %d devices",
			ErrAmbiguousDevice, kernelName, len(matches))
	}
	return matches[0], nil
}

// checkIdentity guards against operating on the wrong device class even
// when the udev rules upstream are supposed to have filtered already.
func (r *Resolver) checkIdentity(guitar *udev.Device) error {
	name, ok := guitar.Name()
	if !ok {
		return fmt.Errorf("%w: %s has no name attribute",
			ErrMissingAttribute, guitar.Syspath)
	}

	marker, suffix := r.Marker, r.Suffix
	if marker == "" {
		marker = defaultMarker
	}
	if suffix == "" {
		suffix = defaultSuffix
	}
	if !strings.Contains(name, marker) || !strings.HasSuffix(name, suffix) {
		return fmt.Errorf("%w: %q (are the udev rules set right?)",
			ErrIdentityMismatch, name)
	}
	return nil
}

func (r *Resolver) checkParent(guitar *udev.Device) (*udev.Device, error) {
	wiimote := guitar.Parent
	if wiimote == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoParent, guitar.Syspath)
	}
	if wiimote.Subsystem != parentSubsystem {
		return nil, fmt.Errorf("%w: %s has subsystem %q, want %q",
			ErrParentMismatch, wiimote.Sysname, wiimote.Subsystem, parentSubsystem)
	}
	if wiimote.Driver != parentDriver {
		return nil, fmt.Errorf("%w: %s has driver %q, want %q",
			ErrParentMismatch, wiimote.Sysname, wiimote.Driver, parentDriver)
	}
	return wiimote, nil
}

// classifySiblings fills parts from the wiimote's input-class children.
// The finder's parent match also returns grandchildren (the event nodes
// themselves), so candidates are narrowed to direct children by syspath.
// First match per role wins; enumeration stops once all roles are filled.
func (r *Resolver) classifySiblings(wiimote *udev.Device, parts *Parts) error {
	siblings, err := r.Finder.Find(udev.Criteria{
		Parent:    wiimote,
		Subsystem: inputSubsystem,
	})
	if err != nil {
		return fmt.Errorf("enumerating children of %s: %w", wiimote.Sysname, err)
	}

	for _, sibling := range siblings {
		if sibling.Syspath == wiimote.Syspath {
			continue
		}
		if sibling.Parent == nil || sibling.Parent.Syspath != wiimote.Syspath {
			continue
		}

		name, ok := sibling.Name()
		if !ok {
			// Unrelated siblings are legitimate; skip quietly.
			continue
		}
		role, ok := roleNames[name]
		if !ok {
			continue
		}

		slot := parts.slot(role)
		if *slot != nil {
			continue
		}
		event, err := r.eventNode(sibling)
		if err != nil {
			return err
		}
		*slot = event

		if parts.Complete() {
			break
		}
	}
	return nil
}

// eventNode descends from a logical input device to the event child that
// exposes the readable device node.
func (r *Resolver) eventNode(input *udev.Device) (*udev.Device, error) {
	children, err := r.Finder.Find(udev.Criteria{
		Parent:    input,
		Subsystem: inputSubsystem,
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating children of %s: %w", input.Sysname, err)
	}

	for _, child := range children {
		if child.Syspath == input.Syspath {
			continue
		}
		if strings.HasPrefix(child.Sysname, eventPrefix) {
			return child, nil
		}
	}
	return nil, fmt.Errorf("%w under %s", ErrNoEventNode, input.Syspath)
}
