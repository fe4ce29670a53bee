// Command roadii resolves a Wiimote with a guitar attached into its three
// kernel event devices and replaces itself with an evsieve process that
// presents them as a single virtual guitar controller.
//
// Usage:
//
//	roadii -kernel-name input19
//
// Flags:
//
//	-kernel-name string   kernel name of the matched input device (from udev)
//	-evsieve-path string  path to the evsieve binary (default: find in PATH)
//	-config string        optional YAML config file
//	-log-level string     debug, info, warn or error (default "info")
//	-list                 list attached Nintendo HID devices and exit
//	-dry-run              print the evsieve command instead of exec'ing it
//
// roadii is meant to be started from a udev rule that fires when the
// hid-wiimote driver registers a guitar extension, passing %k as the
// kernel name.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ticky/roadii/internal/config"
	"github.com/ticky/roadii/internal/evsieve"
	"github.com/ticky/roadii/internal/hidscan"
	"github.com/ticky/roadii/pkg/udev"
	"github.com/ticky/roadii/pkg/wiitar"
)

func main() {
	var (
		kernelName  string
		evsievePath string
		configPath  string
		logLevel    string
		list        bool
		dryRun      bool
	)
	flag.StringVar(&kernelName, "kernel-name", "", "kernel name of the device to match, e.g. input19")
	flag.StringVar(&evsievePath, "evsieve-path", "", "path to the evsieve binary")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flag.BoolVar(&list, "list", false, "list attached Nintendo HID devices and exit")
	flag.BoolVar(&dryRun, "dry-run", false, "print the evsieve command instead of running it")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "roadii:", err)
		os.Exit(1)
	}
	if evsievePath == "" {
		evsievePath = cfg.EvsievePath
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}

	log := newLogger(logLevel)

	if list {
		if err := listCandidates(); err != nil {
			log.Error("listing devices failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if kernelName == "" {
		fmt.Fprintln(os.Stderr, "roadii: -kernel-name is required (try -list)")
		flag.Usage()
		os.Exit(2)
	}

	resolver := &wiitar.Resolver{
		Finder: udev.NewScanner(),
		Log:    log,
		Marker: cfg.Identity.Marker,
		Suffix: cfg.Identity.Suffix,
	}
	parts, err := resolver.Resolve(kernelName)
	if err != nil {
		log.Error("resolution failed", slog.Any("error", err))
		os.Exit(1)
	}

	args, err := evsieve.Args(parts)
	if err != nil {
		log.Error("building evsieve command failed", slog.Any("error", err))
		os.Exit(1)
	}

	if dryRun {
		binary := evsievePath
		if binary == "" {
			binary = evsieve.DefaultBinary
		}
		fmt.Println(binary, strings.Join(args, " "))
		return
	}

	// Exec only returns on failure.
	if err := evsieve.Exec(evsievePath, args); err != nil {
		log.Error("starting evsieve failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func listCandidates() error {
	candidates, err := hidscan.Candidates()
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println("no Nintendo HID devices found")
		return nil
	}
	for _, c := range candidates {
		fmt.Printf("%04x:%04x  %-9s  %-34s  %s\n",
			c.VendorID, c.ProductID, c.Bus, c.Product, c.Path)
	}
	return nil
}
