package device

import (
	"context"

	"codeberg.org/mutker/deepcoolctl/internal/catalog"
)

// Info describes an attached HID device as reported by enumeration.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Serial       string
}

// Transport enumerates and opens HID devices.
type Transport interface {
	Enumerate() ([]Info, error)
	Open(info Info) (Handle, error)
}

// Handle is an open HID device.
type Handle interface {
	SetNonblock(nonblock bool) error
	Write(p []byte) (int, error)
	GetMfrStr() (string, error)
	GetProductStr() (string, error)
	GetSerialNbr() (string, error)
	Close() error
}

// Candidate is an attached device found in the catalog.
type Candidate struct {
	Info   Info
	Config catalog.DeviceConfig
}

// Selector picks one of several candidates and returns its index. Returning
// an error cancels the selection.
type Selector func(ctx context.Context, candidates []Candidate) (int, error)

// Identity is what the device reports about itself once connected.
type Identity struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Serial       string
}
