// Package main is the entry point for the formstorm form designer
// runner. It loads the configuration and palette, builds a designer,
// executes the Lua form scripts given on the command line, and prints
// the resulting form layout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/formstorm/internal/config"
	"github.com/dshills/formstorm/internal/designer"
	"github.com/dshills/formstorm/internal/designer/palette"
	"github.com/dshills/formstorm/internal/event"
	"github.com/dshills/formstorm/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		palettePath string
		loadPath    string
		savePath    string
		watch       bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&palettePath, "palette", "", "Path to YAML widget palette")
	flag.StringVar(&loadPath, "load", "", "Form file to load before running scripts")
	flag.StringVar(&savePath, "save", "", "Write the resulting form to this file")
	flag.BoolVar(&watch, "watch", false, "Keep running, applying config file changes live")
	flag.BoolVar(&verbose, "verbose", false, "Log command events to stderr")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Formstorm - scriptable form designer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: formstorm [options] [scripts...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  formstorm build.lua              Run a form script\n")
		fmt.Fprintf(os.Stderr, "  formstorm -c app.toml build.lua  Run with explicit config\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Formstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if palettePath == "" {
		palettePath = cfg.Palette.Path
	}
	pal, err := palette.Load(palettePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = bus.Stop(ctx)
	}()

	if verbose {
		if _, err := bus.Subscribe("designer.command.*", func(env event.Envelope) {
			fmt.Fprintf(os.Stderr, "%s %v\n", env.Topic, env.Payload)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	d := designer.New(
		designer.WithConfig(cfg),
		designer.WithPalette(pal),
		designer.WithBus(bus),
	)

	if loadPath != "" {
		data, err := os.ReadFile(loadPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := d.Load(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading %s: %v\n", loadPath, err)
			return 1
		}
	}

	host := script.NewHost(d)
	defer host.Close()

	for _, path := range flag.Args() {
		if err := host.RunFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if watch && configPath != "" {
		w, err := config.WatchFile(configPath, 0, func(cfg config.Config, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "config reload: %v\n", err)
				return
			}
			d.ApplyConfig(cfg)
			fmt.Fprintln(os.Stderr, "config reloaded")
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer func() { _ = w.Close() }()

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals
	}

	if savePath != "" {
		data, err := d.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	printForm(d)
	return 0
}

// printForm writes the final form layout to stdout.
func printForm(d *designer.Designer) {
	fmt.Printf("components: %d\n", d.Len())
	for i := 0; i < d.Len(); i++ {
		comp, _ := d.Component(i)
		pos, _ := d.Document().Layout.Position(i)
		size, _ := d.Document().Layout.Size(i)
		fmt.Printf("  [%d] %-8s at %s size %s", i, comp.Name(), pos, size)
		if text, ok := comp.Property("text"); ok {
			fmt.Printf(" text=%q", text)
		}
		fmt.Println()
	}
	if snap := d.History().Snapshot(); len(snap) > 0 {
		fmt.Println("history:")
		for _, line := range snap {
			fmt.Printf("  %s\n", line)
		}
	}
}
