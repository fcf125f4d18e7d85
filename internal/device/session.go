// Package device discovers supported coolers on the HID bus and owns the
// connection to the selected one.
package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/catalog"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/frame"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
)

const (
	unknownString = "Unknown"

	// DefaultWakeDelay is how long the display needs after the start frame.
	DefaultWakeDelay = time.Second
)

// Session owns at most one open handle and the configuration of the device
// behind it.
type Session struct {
	transport Transport
	catalog   *catalog.Catalog
	logger    logger.Logger
	wakeDelay time.Duration

	mu       sync.Mutex
	handle   Handle
	config   *catalog.DeviceConfig
	identity Identity
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) {
		s.logger = log
	}
}

// WithWakeDelay overrides the pause after the start frame.
func WithWakeDelay(d time.Duration) Option {
	return func(s *Session) {
		s.wakeDelay = d
	}
}

// NewSession returns an unconnected session.
func NewSession(transport Transport, cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		catalog:   cat,
		logger:    logger.Nop(),
		wakeDelay: DefaultWakeDelay,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Discover lists attached devices present in the catalog, in enumeration
// order.
func (s *Session) Discover() ([]Candidate, error) {
	infos, err := s.transport.Enumerate()
	if err != nil {
		return nil, errors.New().Wrap(ErrEnumerateFailed, err)
	}

	var found []Candidate
	for _, info := range infos {
		if cfg, ok := s.catalog.Lookup(info.VendorID, info.ProductID); ok {
			found = append(found, Candidate{Info: info, Config: cfg})
		}
	}

	s.logger.Debug().Int("attached", len(infos)).Int("supported", len(found)).Msg("Scanned HID bus")

	return found, nil
}

// Connect discovers, selects and opens a device. A single match is selected
// automatically; several matches are handed to selector.
func (s *Session) Connect(ctx context.Context, selector Selector) (Identity, error) {
	errFactory := errors.New()

	s.mu.Lock()
	connected := s.handle != nil
	s.mu.Unlock()
	if connected {
		return Identity{}, errFactory.WithMessage(ErrAlreadyConnected, "session already connected")
	}

	candidates, err := s.Discover()
	if err != nil {
		return Identity{}, err
	}

	chosen, err := s.choose(ctx, candidates, selector)
	if err != nil {
		return Identity{}, err
	}

	return s.open(chosen)
}

func (s *Session) choose(ctx context.Context, candidates []Candidate, selector Selector) (Candidate, error) {
	errFactory := errors.New()

	switch len(candidates) {
	case 0:
		return Candidate{}, errFactory.WithData(ErrNoDeviceFound, s.catalog.Models())
	case 1:
		return candidates[0], nil
	}

	if selector == nil {
		return Candidate{}, errFactory.WithData(ErrAmbiguousSelection,
			fmt.Sprintf("%d devices found and no selector", len(candidates)))
	}

	idx, err := selector(ctx, candidates)
	if err != nil {
		return Candidate{}, errFactory.Wrap(ErrAmbiguousSelection, err)
	}
	if idx < 0 || idx >= len(candidates) {
		return Candidate{}, errFactory.WithData(ErrAmbiguousSelection,
			fmt.Sprintf("choice %d out of range 1-%d", idx+1, len(candidates)))
	}

	return candidates[idx], nil
}

func (s *Session) open(c Candidate) (Identity, error) {
	errFactory := errors.New()
	key := catalog.Key{VendorID: c.Info.VendorID, ProductID: c.Info.ProductID}

	s.logger.Info().Str("model", c.Config.Name).Str("id", key.String()).Msg("Connecting")

	h, err := s.transport.Open(c.Info)
	if err != nil {
		return Identity{}, errFactory.Wrap(ErrConnectionFailed, err).WithData(key.String())
	}

	if err := h.SetNonblock(true); err != nil {
		h.Close()
		return Identity{}, errFactory.Wrap(ErrConnectionFailed, err).WithData(key.String())
	}

	id := Identity{
		VendorID:     c.Info.VendorID,
		ProductID:    c.Info.ProductID,
		Manufacturer: orUnknown(h.GetMfrStr()),
		Product:      orUnknown(h.GetProductStr()),
		Serial:       orUnknown(h.GetSerialNbr()),
	}

	cfg := c.Config

	s.mu.Lock()
	s.handle = h
	s.config = &cfg
	s.identity = id
	s.mu.Unlock()

	s.logger.Info().
		Str("manufacturer", id.Manufacturer).
		Str("product", id.Product).
		Str("serial", id.Serial).
		Str("model", cfg.Name).
		Str("family", cfg.Family.String()).
		Msg("Connected")

	return id, nil
}

func orUnknown(s string, err error) string {
	if err != nil || s == "" {
		return unknownString
	}

	return s
}

// Config returns the connected device's configuration.
func (s *Session) Config() (catalog.DeviceConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return catalog.DeviceConfig{}, false
	}

	return *s.config, true
}

// Identity returns the connected device's identity strings.
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity, s.handle != nil
}

// Frame encodes value for the connected device.
func (s *Session) Frame(value int, mode frame.DisplayMode) ([]byte, error) {
	cfg, ok := s.Config()
	if !ok {
		return nil, errors.New().New(ErrNotConnected)
	}

	return frame.Encode(cfg, value, mode)
}

// Send encodes and writes one frame.
func (s *Session) Send(value int, mode frame.DisplayMode) error {
	buf, err := s.Frame(value, mode)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return errors.New().New(ErrNotConnected)
	}

	if _, err := s.handle.Write(buf); err != nil {
		return errors.New().Wrap(ErrTransmissionFailed, err).WithData(mode.String())
	}

	s.logger.Debug().Str("mode", mode.String()).Int("value", value).Hex("frame", buf).Msg("Frame written")

	return nil
}

// Initialize wakes the display with the start frame and waits for it to
// settle.
func (s *Session) Initialize(ctx context.Context) error {
	if err := s.Send(0, frame.ModeStart); err != nil {
		return err
	}

	timer := time.NewTimer(s.wakeDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.New().Wrap(errors.ErrTimeout, ctx.Err())
	case <-timer.C:
	}

	s.logger.Info().Msg("Display initialized")

	return nil
}

// Close releases the handle. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.config = nil
	s.identity = Identity{}
	s.mu.Unlock()

	if h == nil {
		return nil
	}

	if err := h.Close(); err != nil {
		return errors.New().Wrap(ErrCloseFailed, err)
	}

	s.logger.Info().Msg("Device connection closed")

	return nil
}
