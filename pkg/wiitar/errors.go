package wiitar

import "errors"

// Resolution failures. Every failure is terminal for the whole resolution;
// nothing is retried and no partial Parts value is ever returned.
var (
	// ErrAmbiguousDevice reports that the kernel name matched zero devices
	// or more than one. There is no pick-first fallback.
	ErrAmbiguousDevice = errors.New("kernel name did not match exactly one device")

	// ErrMissingAttribute reports an absent attribute on a device that is
	// required to have it.
	ErrMissingAttribute = errors.New("device attribute missing")

	// ErrIdentityMismatch reports that the matched device's name does not
	// look like a Wii guitar.
	ErrIdentityMismatch = errors.New("device does not look like a Wii guitar")

	// ErrNoParent reports that the guitar device has no parent.
	ErrNoParent = errors.New("device has no parent")

	// ErrParentMismatch reports a parent whose subsystem or driver is not
	// the wiimote HID driver.
	ErrParentMismatch = errors.New("parent is not a wiimote HID device")

	// ErrNoEventNode reports a classified input device without an event
	// child exposing a readable device node.
	ErrNoEventNode = errors.New("no child event device")

	// ErrIncomplete reports that sibling enumeration finished without
	// filling all three roles.
	ErrIncomplete = errors.New("failed to find all wiitar input devices")
)
