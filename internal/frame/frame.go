// Package frame encodes display states into the fixed-size reports DeepCool
// digital coolers accept. Encoding is pure: the same configuration, value
// and mode always produce the same bytes.
package frame

import (
	"fmt"

	"codeberg.org/mutker/deepcoolctl/internal/catalog"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
)

// DisplayMode selects what a frame means to the device.
type DisplayMode int

const (
	ModeStart DisplayMode = iota
	ModeTemperature
	ModeUtilization
)

func (m DisplayMode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModeTemperature:
		return "temperature"
	case ModeUtilization:
		return "utilization"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Complex family layout.
const (
	complexHeader = 16

	tagStart       = 170
	tagTemperature = 19
	tagUtilization = 76

	offsetHeader = 0
	offsetTag    = 1
	offsetBar    = 2
	offsetDigits = 3

	maxDigits  = 4
	maxValue   = 9999
	maxBarByte = 0xFF
)

// Simple family layout.
const (
	simpleTagTemperature = 0x01
	simpleTagUtilization = 0x02
	maxSimpleValue       = 0xFF
)

var simpleStart = []byte{0x10, 0x01}

// Encode builds the frame for value in the given mode.
func Encode(cfg catalog.DeviceConfig, value int, mode DisplayMode) ([]byte, error) {
	switch cfg.Family {
	case catalog.FamilyComplex:
		return encodeComplex(cfg, value, mode)
	case catalog.FamilySimple:
		return encodeSimple(value, mode)
	default:
		return nil, errors.New().WithData(ErrUnsupportedModel, cfg.Family.String())
	}
}

// BarValue maps a metric to the 1-10 bar level: max(1, ceil(v/10)).
func BarValue(value int) int {
	if value <= 0 {
		return 1
	}

	return max(1, (value+9)/10)
}

func encodeComplex(cfg catalog.DeviceConfig, value int, mode DisplayMode) ([]byte, error) {
	errFactory := errors.New()

	var tag byte
	switch mode {
	case ModeStart:
		tag = tagStart
	case ModeTemperature:
		tag = tagTemperature
	case ModeUtilization:
		tag = tagUtilization
	default:
		return nil, errFactory.WithData(ErrUnsupportedMode, mode.String())
	}

	if value < 0 || value > maxValue {
		return nil, errFactory.WithData(ErrValueOutOfRange, value)
	}

	buf := make([]byte, cfg.PacketSize)
	buf[offsetHeader] = complexHeader
	buf[offsetTag] = tag
	buf[offsetBar] = byte(min(BarValue(value), maxBarByte))

	if mode == ModeStart {
		return buf, nil
	}

	placeDigits(buf, digits(value))

	if cfg.RearrangeDigits {
		rearrange(buf)
	}

	return buf, nil
}

// digits returns the decimal digits of a non-negative value, most
// significant first.
func digits(value int) []byte {
	if value == 0 {
		return []byte{0}
	}

	var out []byte
	for ; value > 0; value /= 10 {
		out = append([]byte{byte(value % 10)}, out...)
	}

	return out
}

// placeDigits writes up to four digits into the cells at bytes 3-6. Numbers
// of up to three digits end at byte 5; only a fourth digit reaches byte 6.
func placeDigits(buf []byte, ds []byte) {
	start := offsetDigits + 3 - len(ds)
	if len(ds) == maxDigits {
		start = offsetDigits
	}
	copy(buf[start:], ds)
}

// rearrange rotates cells 3, 4 and 5 for models whose segments are wired in
// a different order: (b3, b4, b5) becomes (b4, b5, b3).
func rearrange(buf []byte) {
	b3, b4, b5 := buf[3], buf[4], buf[5]
	buf[3], buf[4], buf[5] = b4, b5, b3
}

func encodeSimple(value int, mode DisplayMode) ([]byte, error) {
	switch mode {
	case ModeStart:
		out := make([]byte, len(simpleStart))
		copy(out, simpleStart)
		return out, nil
	case ModeTemperature, ModeUtilization:
		if value < 0 || value > maxSimpleValue {
			return nil, errors.New().WithData(ErrValueOutOfRange, value)
		}
		tag := byte(simpleTagTemperature)
		if mode == ModeUtilization {
			tag = simpleTagUtilization
		}
		return []byte{tag, byte(value)}, nil
	default:
		return []byte{0x00}, nil
	}
}
