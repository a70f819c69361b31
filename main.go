package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/jibbex/rgpio/gpio"
)

func init() {
	InitializeLogger()
}

// Populated by ldflags (ugh)
var (
	version            string
	buildUnixTimestamp string
	commitHash         string
)

func main() {
	ts, _ := strconv.ParseInt(buildUnixTimestamp, 10, 64)
	buildTime := time.Unix(ts, 0)

	versionFlag := flag.Bool("version", false, "Print version")
	systemdFlag := flag.Bool("systemd", false, "Print systemd service file")
	serveFlag := flag.Bool("serve", false, "Expose pin operations over HTTP instead of toggling")
	simulateFlag := flag.Bool("simulate", false, "Run against an in-memory GPIO simulator instead of sysfs")
	configFlag := flag.String("config", "", "Path to config file")
	holdFlag := flag.Duration("hold", 0, "How long to hold each level while toggling")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Rgpio version:", version)
		fmt.Println("Built on:", buildTime)
		fmt.Println("Commit hash:", commitHash)
		return
	}

	if *systemdFlag {
		SystemdServiceFile()
		return
	}

	config, err := NewConfig(NewRgpioOSFS(), Flags{
		ConfigPath: *configFlag,
		Simulate:   *simulateFlag,
		Hold:       *holdFlag,
	}, os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("Config initialization failed")
	}

	var pins gpio.Pins
	if config.Simulate() {
		log.Debug().Msg("GPIO will be simulated")
		pins = gpio.NewSimulator()
	} else {
		pins = gpio.NewWithFs(afero.NewOsFs(), config.SysfsRoot())
	}

	if *serveFlag {
		log.Info().
			Str("version", version).
			Str("build_timestamp", buildTime.Format(time.RFC3339)).
			Str("commit_hash", commitHash).
			Msg("Initializing rgpio server")

		if err := StartServer(config, pins); err != nil {
			log.Fatal().Err(err).Msg("Server closed with error")
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Println("usage: rgpio [flags] pin [pin ...]")
		flag.PrintDefaults()
		return
	}

	if err := Run(pins, flag.Args(), config.Hold()); err != nil {
		log.Fatal().Err(err).Msg("Toggle run failed")
	}
}
