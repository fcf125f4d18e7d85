package catalog

import (
	"fmt"
	"os"
	"strconv"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileEntry is the YAML form of an entry. Ids accept hex ("0x3633") or
// decimal notation.
type fileEntry struct {
	VendorID        string `yaml:"vendor_id"`
	ProductID       string `yaml:"product_id"`
	Name            string `yaml:"name"`
	Mode            string `yaml:"mode"`
	RearrangeDigits bool   `yaml:"rearrange_digits"`
	PacketSize      int    `yaml:"packet_size"`
}

type fileDocument struct {
	Devices []fileEntry `yaml:"devices"`
}

// LoadFile reads extra entries from a YAML document of the form
//
//	devices:
//	  - vendor_id: 0x3633
//	    product_id: 0x000B
//	    name: AK500
//	    mode: complex
//	    rearrange_digits: false
//	    packet_size: 64
//
// and merges them over base.
func LoadFile(base *Catalog, path string) (*Catalog, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrReadFile, err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return base.Merge(entries...)
}

// Parse decodes catalog entries from YAML.
func Parse(data []byte) ([]Entry, error) {
	errFactory := errors.New()

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errFactory.Wrap(ErrParseFile, err)
	}

	entries := make([]Entry, 0, len(doc.Devices))
	for i, fe := range doc.Devices {
		e, err := fe.entry()
		if err != nil {
			return nil, errFactory.Wrap(ErrParseFile, fmt.Errorf("device %d: %w", i, err))
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (fe fileEntry) entry() (Entry, error) {
	vid, err := parseID(fe.VendorID)
	if err != nil {
		return Entry{}, fmt.Errorf("vendor_id: %w", err)
	}
	pid, err := parseID(fe.ProductID)
	if err != nil {
		return Entry{}, fmt.Errorf("product_id: %w", err)
	}

	family := FamilyComplex
	if fe.Mode != "" {
		if family, err = ParseFamily(fe.Mode); err != nil {
			return Entry{}, err
		}
	}

	e := Entry{
		Key: Key{VendorID: vid, ProductID: pid},
		Config: DeviceConfig{
			Name:            fe.Name,
			Family:          family,
			RearrangeDigits: fe.RearrangeDigits,
			PacketSize:      fe.PacketSize,
		},
	}

	return e, e.Config.validate()
}

func parseID(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}

	return uint16(v), nil
}
