// Package catalog holds the table of supported DeepCool digital coolers,
// keyed by USB vendor and product id.
package catalog

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
)

// minComplexPacketSize covers the header, mode tag, bar and four digit cells.
const minComplexPacketSize = 7

// Family selects one of the two frame layouts.
type Family int

const (
	FamilySimple Family = iota
	FamilyComplex
)

func (f Family) String() string {
	switch f {
	case FamilySimple:
		return "simple"
	case FamilyComplex:
		return "complex"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily accepts the names used in catalog files.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return FamilySimple, nil
	case "complex":
		return FamilyComplex, nil
	default:
		return 0, errors.New().WithData(ErrInvalidEntry, fmt.Sprintf("unknown family %q", s))
	}
}

// Key identifies a device model on the bus.
type Key struct {
	VendorID  uint16
	ProductID uint16
}

func (k Key) String() string {
	return fmt.Sprintf("VID:0x%04X, PID:0x%04X", k.VendorID, k.ProductID)
}

// DeviceConfig describes how to talk to one model.
type DeviceConfig struct {
	Name string
	// Family is the frame layout.
	Family Family
	// RearrangeDigits compensates for digit cells wired in a different order.
	RearrangeDigits bool
	PacketSize      int
}

func (c DeviceConfig) validate() error {
	errFactory := errors.New()

	if strings.TrimSpace(c.Name) == "" {
		return errFactory.WithData(ErrInvalidEntry, "empty model name")
	}
	if c.Family != FamilySimple && c.Family != FamilyComplex {
		return errFactory.WithData(ErrInvalidEntry, c.Family.String())
	}
	if c.Family == FamilyComplex && c.PacketSize < minComplexPacketSize {
		return errFactory.WithData(ErrInvalidEntry,
			fmt.Sprintf("%s: packet size %d below %d", c.Name, c.PacketSize, minComplexPacketSize))
	}

	return nil
}

// Entry is one catalog row.
type Entry struct {
	Key    Key
	Config DeviceConfig
}

// Catalog is an ordered table of entries with unique keys.
type Catalog struct {
	entries []Entry
	index   map[Key]int
}

var builtin = []Entry{
	{
		Key:    Key{VendorID: 0x3633, ProductID: 0x0008},
		Config: DeviceConfig{Name: "AG620", Family: FamilyComplex, RearrangeDigits: true, PacketSize: 64},
	},
	{
		Key:    Key{VendorID: 0x3633, ProductID: 0x0009},
		Config: DeviceConfig{Name: "AG400", Family: FamilyComplex, RearrangeDigits: true, PacketSize: 64},
	},
	{
		Key:    Key{VendorID: 0x3633, ProductID: 0x000A},
		Config: DeviceConfig{Name: "Unknown_A", Family: FamilyComplex, RearrangeDigits: false, PacketSize: 64},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin...)
	if err != nil {
		panic(err)
	}

	return c
}

// New builds a catalog. Later entries replace earlier ones with the same key
// but keep the earlier position.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{index: make(map[Key]int, len(entries))}
	for _, e := range entries {
		if err := c.put(e); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Catalog) put(e Entry) error {
	if err := e.Config.validate(); err != nil {
		return err
	}

	if i, ok := c.index[e.Key]; ok {
		c.entries[i] = e
		return nil
	}

	c.index[e.Key] = len(c.entries)
	c.entries = append(c.entries, e)

	return nil
}

// Merge returns a new catalog holding c's entries overridden and extended by
// the given ones.
func (c *Catalog) Merge(entries ...Entry) (*Catalog, error) {
	all := make([]Entry, 0, len(c.entries)+len(entries))
	all = append(all, c.entries...)
	all = append(all, entries...)

	return New(all...)
}

// Lookup returns the configuration for a vendor/product pair.
func (c *Catalog) Lookup(vendorID, productID uint16) (DeviceConfig, bool) {
	i, ok := c.index[Key{VendorID: vendorID, ProductID: productID}]
	if !ok {
		return DeviceConfig{}, false
	}

	return c.entries[i].Config, true
}

// Entries returns a copy of the table in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Models lists the supported models for operator-facing messages.
func (c *Catalog) Models() []string {
	models := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		models = append(models, fmt.Sprintf("%s (%s)", e.Config.Name, e.Key))
	}

	return models
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	return len(c.entries)
}
