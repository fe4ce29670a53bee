package udev

// Fake is an in-memory Finder for tests and offline use. It applies the
// same matching semantics as Scanner, including Parent criteria matching
// the parent itself and every descendant.
type Fake struct {
	devices []*Device
}

// NewFake builds a Fake over the given devices. Enumeration order is the
// order devices were added.
func NewFake(devices ...*Device) *Fake {
	return &Fake{devices: devices}
}

// Add appends devices to the tree.
func (f *Fake) Add(devices ...*Device) {
	f.devices = append(f.devices, devices...)
}

// Find returns devices matching c in insertion order.
func (f *Fake) Find(c Criteria) ([]*Device, error) {
	var out []*Device
	for _, d := range f.devices {
		if c.matches(d) {
			out = append(out, d)
		}
	}
	return out, nil
}
