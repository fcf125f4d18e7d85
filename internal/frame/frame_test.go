package frame_test

import (
	"testing"

	"codeberg.org/mutker/deepcoolctl/internal/catalog"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	plain = catalog.DeviceConfig{Name: "Unknown_A", Family: catalog.FamilyComplex, PacketSize: 64}
	ag620 = catalog.DeviceConfig{Name: "AG620", Family: catalog.FamilyComplex, RearrangeDigits: true, PacketSize: 64}
	basic = catalog.DeviceConfig{Name: "Basic", Family: catalog.FamilySimple}
)

func TestBarValue(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 9: 1, 10: 1, 11: 2, 55: 6, 99: 10, 100: 10}
	for in, want := range tests {
		assert.Equal(t, want, frame.BarValue(in), "BarValue(%d)", in)
	}
}

// readDigits reconstructs a value from the cells using the placement table.
func readDigits(t *testing.T, b []byte, n int) int {
	t.Helper()

	var cells []byte
	switch n {
	case 1:
		cells = b[5:6]
	case 2:
		cells = b[4:6]
	case 3:
		cells = b[3:6]
	case 4:
		cells = b[3:7]
	default:
		t.Fatalf("unexpected digit count %d", n)
	}

	v := 0
	for _, c := range cells {
		v = v*10 + int(c)
	}

	return v
}

func digitCount(v int) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}

	return n
}

func TestComplexPlacementReconstructsValue(t *testing.T) {
	for _, mode := range []frame.DisplayMode{frame.ModeTemperature, frame.ModeUtilization} {
		for v := 1; v <= 9999; v++ {
			b, err := frame.Encode(plain, v, mode)
			require.NoError(t, err)
			require.Len(t, b, 64)
			require.Equal(t, byte(16), b[0])
			if mode == frame.ModeTemperature {
				require.Equal(t, byte(19), b[1])
			} else {
				require.Equal(t, byte(76), b[1])
			}
			require.Equal(t, byte(min(frame.BarValue(v), 255)), b[2])
			require.Equal(t, v, readDigits(t, b, digitCount(v)), "value %d", v)
			for i := 7; i < 64; i++ {
				require.Zero(t, b[i], "trailing byte %d for %d", i, v)
			}
		}
	}
}

func TestComplexFixtures(t *testing.T) {
	tests := []struct {
		name  string
		cfg   catalog.DeviceConfig
		value int
		mode  frame.DisplayMode
		head  []byte
	}{
		{"zero", plain, 0, frame.ModeTemperature, []byte{16, 19, 1, 0, 0, 0, 0}},
		{"one digit", plain, 7, frame.ModeTemperature, []byte{16, 19, 1, 0, 0, 7, 0}},
		{"two digits", plain, 45, frame.ModeUtilization, []byte{16, 76, 5, 0, 4, 5, 0}},
		{"three digits", plain, 123, frame.ModeTemperature, []byte{16, 19, 13, 1, 2, 3, 0}},
		{"four digits", plain, 1234, frame.ModeTemperature, []byte{16, 19, 124, 1, 2, 3, 4}},
		{"rearranged three", ag620, 123, frame.ModeTemperature, []byte{16, 19, 13, 2, 3, 1, 0}},
		{"rearranged two", ag620, 45, frame.ModeTemperature, []byte{16, 19, 5, 4, 5, 0, 0}},
		{"rearranged one", ag620, 7, frame.ModeUtilization, []byte{16, 76, 1, 0, 7, 0, 0}},
		{"rearranged four", ag620, 1234, frame.ModeTemperature, []byte{16, 19, 124, 2, 3, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := frame.Encode(tt.cfg, tt.value, tt.mode)
			require.NoError(t, err)
			require.Len(t, b, tt.cfg.PacketSize)
			assert.Equal(t, tt.head, b[:7])
		})
	}
}

func TestComplexStartFrame(t *testing.T) {
	for _, cfg := range []catalog.DeviceConfig{plain, ag620} {
		for _, v := range []int{0, 5, 42, 123, 9999} {
			b, err := frame.Encode(cfg, v, frame.ModeStart)
			require.NoError(t, err)
			require.Len(t, b, 64)
			assert.Equal(t, byte(16), b[0])
			assert.Equal(t, byte(170), b[1])
			assert.Equal(t, byte(min(frame.BarValue(v), 255)), b[2])
			assert.Equal(t, []byte{0, 0, 0, 0}, b[3:7], "digit cells for %d", v)
		}
	}
}

func TestComplexRespectsPacketSize(t *testing.T) {
	cfg := catalog.DeviceConfig{Name: "Short", Family: catalog.FamilyComplex, PacketSize: 8}
	b, err := frame.Encode(cfg, 42, frame.ModeTemperature)
	require.NoError(t, err)
	assert.Equal(t, []byte{16, 19, 5, 0, 4, 2, 0, 0}, b)
}

func TestComplexRejects(t *testing.T) {
	_, err := frame.Encode(plain, 10, frame.DisplayMode(3))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, frame.ErrUnsupportedMode))

	_, err = frame.Encode(plain, -1, frame.ModeTemperature)
	assert.True(t, errors.HasCode(err, frame.ErrValueOutOfRange))

	b, err := frame.Encode(plain, 10000, frame.ModeUtilization)
	assert.True(t, errors.HasCode(err, frame.ErrValueOutOfRange))
	assert.Nil(t, b)
}

func TestSimpleFamily(t *testing.T) {
	b, err := frame.Encode(basic, 99, frame.ModeStart)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x01}, b)

	b, err = frame.Encode(basic, 61, frame.ModeTemperature)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 61}, b)

	b, err = frame.Encode(basic, 255, frame.ModeUtilization)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0xFF}, b)

	b, err = frame.Encode(basic, 1, frame.DisplayMode(7))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)

	_, err = frame.Encode(basic, 256, frame.ModeTemperature)
	assert.True(t, errors.HasCode(err, frame.ErrValueOutOfRange))
}

func TestSimpleStartIsNotShared(t *testing.T) {
	b, _ := frame.Encode(basic, 0, frame.ModeStart)
	b[0] = 0xEE

	again, _ := frame.Encode(basic, 0, frame.ModeStart)
	assert.Equal(t, []byte{0x10, 0x01}, again)
}

func TestDisplayModeString(t *testing.T) {
	assert.Equal(t, "temperature", frame.ModeTemperature.String())
	assert.Equal(t, "mode(9)", frame.DisplayMode(9).String())
}
