// Package evsieve builds the evsieve invocation that merges the three
// wiitar event devices into a single virtual guitar controller.
package evsieve

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/ticky/roadii/pkg/udev"
	"github.com/ticky/roadii/pkg/wiitar"
)

// DefaultBinary is used when no evsieve path is configured; it is looked
// up in PATH.
const DefaultBinary = "evsieve"

// binding is one evsieve --map (or --block) rule.
type binding struct {
	flag string
	from string
	to   string
}

func mapping(from, to string) binding {
	return binding{flag: "--map", from: from, to: to}
}

// Per-section options applied to every grabbed input device. persist=exit
// shuts evsieve down when the source device disappears.
var inputOpts = []string{"grab", "persist=exit"}

// The translation tables below are fixed: the left side names events the
// kernel's hid-wiimote driver emits, the right side the layout expected of
// a guitar controller.
var wiimoteBindings = []binding{
	mapping("btn:south@wiimote", "btn:mode@wiitar"),
	mapping("btn:1@wiimote", "btn:thumbl@wiitar"),
	mapping("btn:2@wiimote", "btn:thumbr@wiitar"),
	mapping("btn:mode@wiimote", "btn:z@wiitar"),
	mapping("key:next@wiimote", "btn:start@wiitar"),
	mapping("key:previous@wiimote", "btn:select@wiitar"),
	// The wiimote hangs off the guitar sideways, so the d-pad is rotated.
	mapping("key:left@wiimote", "btn:dpad_up@wiitar"),
	mapping("key:right@wiimote", "btn:dpad_down@wiitar"),
	mapping("key:up@wiimote", "btn:dpad_left@wiitar"),
	mapping("key:down@wiimote", "btn:dpad_right@wiitar"),
}

var guitarBindings = []binding{
	mapping("btn:south@wiimote", "btn:mode@wiitar"),
	mapping("btn:1@guitar", "btn:south@wiitar"),
	mapping("btn:2@guitar", "btn:east@wiitar"),
	mapping("btn:3@guitar", "btn:north@wiitar"),
	mapping("btn:4@guitar", "btn:west@wiitar"),
	mapping("btn:5@guitar", "btn:tl@wiitar"),
	mapping("btn:start@guitar", "btn:start@wiitar"),
	mapping("btn:select@guitar", "btn:select@wiitar"),
	mapping("btn:dpad_up@guitar", "btn:dpad_up@wiitar"),
	mapping("btn:dpad_down@guitar", "btn:dpad_down@wiitar"),
	mapping("abs:hat1x@guitar", "abs:rx:3x@wiitar"),
	mapping("abs:x@guitar", "abs:x@wiitar"),
	mapping("abs:y@guitar", "abs:y@wiitar"),
}

var accelBindings = []binding{
	// Only tilt along ry matters; drop the rest of the accelerometer noise.
	{flag: "--block", from: "abs:rz@accel", to: "abs:rx@accel"},
	mapping("abs:ry:-59~..~-60@accel", "btn:select:1@wiitar"),
	mapping("abs:ry:~-60..-59~@accel", "btn:select:0@wiitar"),
}

// Args builds the full evsieve argument vector (binary name excluded) from
// a resolved Parts. Every part must expose a device node and the three
// nodes must be distinct; failing that, no command is constructed.
func Args(parts *wiitar.Parts) ([]string, error) {
	sections := []struct {
		domain   string
		node     string
		bindings []binding
	}{
		{domain: "wiimote", node: node(parts.Wiimote), bindings: wiimoteBindings},
		{domain: "guitar", node: node(parts.Guitar), bindings: guitarBindings},
		{domain: "accel", node: node(parts.Accel), bindings: accelBindings},
	}

	seen := make(map[string]string, len(sections))
	var args []string
	for _, s := range sections {
		if s.node == "" {
			return nil, fmt.Errorf("%s device has no device node", s.domain)
		}
		if prev, ok := seen[s.node]; ok {
			return nil, fmt.Errorf("%s and %s resolved to the same device node %s",
				prev, s.domain, s.node)
		}
		seen[s.node] = s.domain

		args = append(args, "--input", s.node, "domain="+s.domain)
		args = append(args, inputOpts...)
		for _, b := range s.bindings {
			args = append(args, b.flag, b.from, b.to)
		}
	}

	// TODO: pass device-id/vendor/product to --output so games that match
	// on identity pick the virtual device up.
	args = append(args, "--output", "name=Wiitar", "@wiitar")
	return args, nil
}

func node(d *udev.Device) string {
	if d == nil {
		return ""
	}
	return d.Devnode
}

// Exec replaces the current process with evsieve. On success it never
// returns; evsieve owns the grabbed devices until it exits.
func Exec(binary string, args []string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("locating evsieve: %w", err)
	}
	argv := append([]string{path}, args...)
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
