package udev

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	libudev "github.com/qubesome/libudev"
	"github.com/qubesome/libudev/types"
)

// Scanner is the real Finder. Every Find call takes a fresh snapshot of the
// sysfs device set; there is no transactional guarantee between calls.
type Scanner struct {
	// scan and readlink are swappable for tests.
	scan     func() (error, []*types.Device)
	readlink func(string) (string, error)
}

// NewScanner returns a Scanner backed by the host's device tree.
func NewScanner() *Scanner {
	return &Scanner{
		scan: func() (error, []*types.Device) {
			devices, err := libudev.NewScanner().ScanDevices()
			return err, devices
		},
		readlink: os.Readlink,
	}
}

// Find scans the device tree and returns the devices matching c.
func (s *Scanner) Find(c Criteria) ([]*Device, error) {
	err, raw := s.scan()
	if err != nil {
		return nil, fmt.Errorf("scan devices: %w", err)
	}

	byPath := make(map[string]*Device, len(raw))
	for _, r := range raw {
		d := s.convert(r)
		byPath[d.Syspath] = d
	}
	linkParents(byPath)

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	// Scan order is filesystem-dependent; sort for a stable enumeration.
	sort.Strings(paths)

	var out []*Device
	for _, p := range paths {
		if d := byPath[p]; c.matches(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Scanner) convert(r *types.Device) *Device {
	syspath := normalizeSyspath(r.Devpath)
	return &Device{
		Syspath:   syspath,
		Sysname:   filepath.Base(syspath),
		Subsystem: s.linkBase(filepath.Join(syspath, "subsystem")),
		Driver:    s.driver(syspath, r.Env),
		Devnode:   devnodeFromEnv(r.Env),
		Attrs:     r.Attrs,
	}
}

// driver prefers the uevent DRIVER key; not every bound device carries one,
// so fall back to the driver symlink.
func (s *Scanner) driver(syspath string, env map[string]string) string {
	if v := env["DRIVER"]; v != "" {
		return v
	}
	return s.linkBase(filepath.Join(syspath, "driver"))
}

func (s *Scanner) linkBase(path string) string {
	target, err := s.readlink(path)
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

// normalizeSyspath tolerates devpaths recorded with or without the /sys
// mount prefix.
func normalizeSyspath(devpath string) string {
	if strings.HasPrefix(devpath, "/sys/") {
		return filepath.Clean(devpath)
	}
	return filepath.Join("/sys", devpath)
}

// devnodeFromEnv derives the /dev node from the uevent DEVNAME key, which
// the kernel reports relative to /dev (e.g. "input/event9").
func devnodeFromEnv(env map[string]string) string {
	v := env["DEVNAME"]
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, "/") {
		return v
	}
	return "/dev/" + v
}

// linkParents connects each device to its nearest ancestor present in the
// snapshot. Sysfs nests devices arbitrarily deep, so walk up one path
// element at a time.
func linkParents(byPath map[string]*Device) {
	for _, d := range byPath {
		for p := filepath.Dir(d.Syspath); p != "/sys" && p != "/"; p = filepath.Dir(p) {
			if parent, ok := byPath[p]; ok {
				d.Parent = parent
				break
			}
		}
	}
}
