package device

import (
	"sync"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"github.com/sstallion/go-hid"
)

// HIDTransport talks to hidapi through go-hid.
type HIDTransport struct {
	mu          sync.Mutex
	initialized bool
}

// NewHIDTransport initializes hidapi. Call Close on the returned transport
// once every handle it opened has been closed.
func NewHIDTransport() (*HIDTransport, error) {
	t := &HIDTransport{}
	if err := t.init(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *HIDTransport) init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := hid.Init(); err != nil {
		return errors.New().Wrap(errors.ErrInitFailed, err)
	}
	t.initialized = true

	return nil
}

func (t *HIDTransport) Enumerate() ([]Info, error) {
	var infos []Info
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(d *hid.DeviceInfo) error {
		infos = append(infos, Info{
			Path:         d.Path,
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.MfrStr,
			Product:      d.ProductStr,
			Serial:       d.SerialNbr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return infos, nil
}

// Open prefers the enumeration path so that the selected unit is opened even
// when two units share a vendor/product pair.
func (t *HIDTransport) Open(info Info) (Handle, error) {
	var (
		d   *hid.Device
		err error
	)
	if info.Path != "" {
		d, err = hid.OpenPath(info.Path)
	} else {
		d, err = hid.Open(info.VendorID, info.ProductID, "")
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Close finalizes hidapi.
func (t *HIDTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return nil
	}
	t.initialized = false

	if err := hid.Exit(); err != nil {
		return errors.New().Wrap(errors.ErrShutdownFailed, err)
	}

	return nil
}
