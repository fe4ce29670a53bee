// Package hidscan lists attached Nintendo HID devices to help pick out the
// kernel name of a wiimote when it isn't known up front.
package hidscan

import (
	"fmt"

	"github.com/sstallion/go-hid"
)

// NintendoVID is Nintendo's USB-IF vendor ID; wiimotes report it over
// Bluetooth HID as well.
const NintendoVID uint16 = 0x057E

// Candidate describes one enumerated HID device.
type Candidate struct {
	Path      string
	VendorID  uint16
	ProductID uint16
	Product   string
	Bus       string
}

// Candidates enumerates Nintendo HID devices. Devices are listed, never
// opened.
func Candidates() ([]Candidate, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}
	defer hid.Exit()

	var out []Candidate
	err := hid.Enumerate(NintendoVID, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		out = append(out, Candidate{
			Path:      info.Path,
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Product:   info.ProductStr,
			Bus:       busName(info.BusType),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid enumerate: %w", err)
	}
	return out, nil
}

func busName(b hid.BusType) string {
	switch b {
	case hid.BusUSB:
		return "usb"
	case hid.BusBluetooth:
		return "bluetooth"
	case hid.BusI2C:
		return "i2c"
	case hid.BusSPI:
		return "spi"
	default:
		return "unknown"
	}
}
