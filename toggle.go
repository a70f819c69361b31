package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jibbex/rgpio/gpio"
)

var tlog zerolog.Logger

func init() {
	tlog = log.With().Str("component", "toggle").Logger()
}

// Run toggles every pin named in args once, in order. A pin whose
// export fails is skipped with a warning (most commonly it is already
// exported, or the platform doesn't expose it); any failure after a
// successful export ends the run.
func Run(pins gpio.Pins, args []string, hold time.Duration) error {
	for _, arg := range args {
		pin, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid pin number %q: %w", arg, err)
		}

		if err := pins.Export(pin); err != nil {
			tlog.Warn().Err(err).Int("pin", pin).Msg("Export failed, skipping pin")
			continue
		}

		if err := TogglePin(pins, pin, hold); err != nil {
			return err
		}
	}

	return nil
}

// TogglePin drives one exported pin high then low, reading the level
// back after each write, then releases the pin.
func TogglePin(pins gpio.Pins, pin int, hold time.Duration) error {
	if err := pins.SetDirection(pin, gpio.Out); err != nil {
		return err
	}

	if err := pins.Write(pin, true); err != nil {
		return err
	}
	high, err := pins.Read(pin)
	if err != nil {
		return err
	}
	tlog.Info().Int("pin", pin).Bool("value", high).Msg("Pin level")

	time.Sleep(hold)

	if err := pins.Write(pin, false); err != nil {
		return err
	}

	time.Sleep(hold)

	low, err := pins.Read(pin)
	if err != nil {
		return err
	}
	tlog.Info().Int("pin", pin).Bool("value", low).Msg("Pin level")

	return pins.Unexport(pin)
}
