package main

import (
	"context"
	"flag"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/yunginnanet/i2c-mcp342x/pkg/ft232h"
	"github.com/yunginnanet/i2c-mcp342x/pkg/mcp342x"
	"github.com/yunginnanet/i2c-mcp342x/pkg/periphbus"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

type options struct {
	linuxBus string
	ftIndex  int
	a0       bool
	a1       bool
	a2       bool
	channel  int
	gain     int
	bits     int
	oneShot  bool
	interval time.Duration
	count    int
}

func flags() options {
	var o options
	flag.StringVar(&o.linuxBus, "bus", "", "Linux I2C bus name (\"/dev/i2c-1\", \"1\"); empty uses an FT232H")
	flag.IntVar(&o.ftIndex, "FT232H", 0, "FT232H Index")
	flag.BoolVar(&o.a0, "a0", false, "Adr0 strap pin tied high")
	flag.BoolVar(&o.a1, "a1", false, "Adr1 strap pin tied high")
	flag.BoolVar(&o.a2, "a2", false, "Adr2 strap pin tied high")
	flag.IntVar(&o.channel, "ch", 1, "input channel (1-4)")
	flag.IntVar(&o.gain, "gain", 1, "PGA gain (1, 2, 4, 8)")
	flag.IntVar(&o.bits, "bits", 16, "resolution in bits (12, 14, 16, 18)")
	flag.BoolVar(&o.oneShot, "oneshot", false, "single conversion instead of a continuous watch")
	flag.DurationVar(&o.interval, "interval", 250*time.Millisecond, "poll interval for continuous reads")
	flag.IntVar(&o.count, "n", 10, "number of readings to take in continuous mode")
	flag.Parse()
	return o
}

func connect(o options) mcp342x.Bus {
	if o.linuxBus != "" {
		bus, err := periphbus.Open(o.linuxBus)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open I2C bus")
		}
		log.Info().Msgf("opened %s", bus)
		return bus
	}

	ftdi, err := ft232h.ConnectFT232h(ft232h.ByIndex(o.ftIndex))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to FT232H")
	}
	log.Info().Any("info", ftdi.Info()).Msgf("connected to FT232H: %s", ftdi)
	return ftdi
}

func main() {
	o := flags()

	bus := connect(o)

	addr := mcp342x.Address(o.a0, o.a1, o.a2)

	cfg := mcp342x.DefaultConfig()
	cfg.Channel = mcp342x.Channel(o.channel)
	cfg.Gain = mcp342x.Gain(o.gain)
	cfg.Resolution = mcp342x.Resolution(o.bits)
	if o.oneShot {
		cfg.Mode = mcp342x.OneShot
	}

	adc := mcp342x.New(bus, addr)

	log.Debug().Any("config", cfg).Msgf("initializing MCP342x at %#02x", addr)
	if err := adc.Init(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize MCP342x")
	}

	log.Info().Msg("initialized MCP342x")

	if o.oneShot {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		r, err := adc.Convert(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("one-shot conversion failed")
		}
		log.Info().
			Int32("code", r.OutputCode).
			Float64("microvolts", r.MicroVolts).
			Msgf("%s", r)
	} else {
		var remaining atomic.Int64
		remaining.Store(int64(o.count))

		watch, err := adc.WatchReadings(context.Background(), o.interval, func(r mcp342x.Reading) {
			log.Info().
				Int32("code", r.OutputCode).
				Float64("microvolts", r.MicroVolts).
				Msgf("%s", r)
			remaining.Add(-1)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start watch")
		}

		go func() {
			for !watch.IsDone() {
				if remaining.Load() <= 0 {
					watch.Stop()
				}
				time.Sleep(o.interval)
			}
		}()

		if err := watch.Wait(); err != nil {
			log.Error().Err(err).Msg("watch finished with errors")
		}
	}

	if err := adc.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close MCP342x")
	}

	log.Info().Msg("closed MCP342x")
}
