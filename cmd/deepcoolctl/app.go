package main

import (
	"context"
	"os"

	"codeberg.org/mutker/deepcoolctl/internal/catalog"
	"codeberg.org/mutker/deepcoolctl/internal/config"
	"codeberg.org/mutker/deepcoolctl/internal/console"
	"codeberg.org/mutker/deepcoolctl/internal/device"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"codeberg.org/mutker/deepcoolctl/internal/monitor"
	"codeberg.org/mutker/deepcoolctl/internal/sensor"
	"codeberg.org/mutker/deepcoolctl/internal/validation"
)

type app struct {
	cfg       *config.Config
	log       logger.Logger
	signals   *signalRouter
	prompter  *console.Prompter
	transport *device.HIDTransport
	session   *device.Session
	sensors   *sensor.Sensors
	recorder  validation.Recorder
}

func newApp(ctx context.Context, cfg *config.Config, signals *signalRouter) (_ *app, err error) {
	errFactory := errors.New()

	a := &app{
		cfg:      cfg,
		log:      logger.Default(),
		signals:  signals,
		prompter: console.New(os.Stdin, os.Stdout),
	}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	cat := catalog.Default()
	if cfg.Catalog != "" {
		if cat, err = catalog.LoadFile(cat, cfg.Catalog); err != nil {
			return nil, err
		}
	}

	a.transport, err = device.NewHIDTransport()
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	a.session = device.NewSession(a.transport, cat, device.WithLogger(a.log.With("device")))

	a.prompter.Banner()

	identity, err := a.session.Connect(ctx, a.prompter.SelectDevice)
	if err != nil {
		return nil, err
	}
	devCfg, _ := a.session.Config()
	a.log.Info().
		Str("model", devCfg.Name).
		Str("manufacturer", identity.Manufacturer).
		Str("product", identity.Product).
		Str("serial", identity.Serial).
		Msg("Connected")

	if err := a.session.Initialize(ctx); err != nil {
		return nil, err
	}

	a.sensors = sensor.NewDefault(sensor.Config{
		HardwareMonitor: sensor.HardwareMonitorConfig{
			Enabled: cfg.HardwareMonitor.Enabled,
			Library: cfg.HardwareMonitor.Library,
			URL:     cfg.HardwareMonitor.URL,
			Timeout: cfg.HardwareMonitor.Timeout,
		},
		UsageSample: cfg.UsageSample,
	}, a.log.With("sensor"))

	a.recorder, err = validation.NewRecorder(validation.Config{
		Enabled: cfg.Validation.Enabled,
		DBPath:  cfg.Validation.Database,
	}, a.log.With("validation"))
	if err != nil {
		return nil, err
	}

	return a, nil
}

// run either drives the configured display until cancelled or shows the
// interactive menu.
func (a *app) run(ctx context.Context) error {
	if a.cfg.Display != config.DisplayMenu {
		policy, err := monitor.ParsePolicy(a.cfg.Display, a.cfg.IntervalDuration())
		if err != nil {
			return err
		}
		return a.monitor(ctx, policy)
	}

	for {
		choice, err := a.prompter.Menu(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		switch choice {
		case console.ChoiceTemperature:
			err = a.interruptible(ctx, monitor.DisplayTemperature)
		case console.ChoiceUsage:
			err = a.interruptible(ctx, monitor.DisplayUsage)
		case console.ChoiceAlternating:
			err = a.interruptible(ctx, monitor.DisplayAlternating)
		case console.ChoiceSelfTest:
			err = a.selfTest(ctx)
		case console.ChoiceQuit:
			return nil
		}

		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// interruptible runs one monitoring loop that SIGINT stops without leaving
// the menu.
func (a *app) interruptible(ctx context.Context, display string) error {
	policy, err := monitor.ParsePolicy(display, a.cfg.IntervalDuration())
	if err != nil {
		return err
	}

	runCtx, done := a.signals.begin(ctx)
	defer done()

	return a.monitor(runCtx, policy)
}

func (a *app) monitor(ctx context.Context, policy monitor.Policy) error {
	scheduler := monitor.NewScheduler(policy, a.session, a.sensors, monitor.WithLogger(a.log.With("monitor")))
	return scheduler.Run(ctx)
}

func (a *app) selfTest(ctx context.Context) error {
	devCfg, ok := a.session.Config()
	if !ok {
		return errors.New().New(device.ErrNotConnected)
	}
	identity, _ := a.session.Identity()

	runCtx, done := a.signals.begin(ctx)
	defer done()

	st := monitor.NewSelfTest(monitor.Subject{
		Model:      devCfg.Name,
		VendorID:   identity.VendorID,
		ProductID:  identity.ProductID,
		Rearranged: devCfg.RearrangeDigits,
	}, a.session, a.prompter,
		monitor.WithRecorder(a.recorder),
		monitor.WithSelfTestLogger(a.log.With("selftest")),
	)

	report, err := st.Run(runCtx)
	if err != nil {
		if runCtx.Err() != nil {
			return nil
		}
		return err
	}

	history, err := a.recorder.Summary(ctx, devCfg.Name)
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to read self-test history")
	}
	a.prompter.Report(report, history)

	return nil
}

func (a *app) close() {
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			logError(err, "Failed to close validation ledger")
		}
	}
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			logError(err, "Failed to close device")
		}
	}
	if a.transport != nil {
		if err := a.transport.Close(); err != nil {
			logError(err, "Failed to release HID library")
		}
	}
}
