package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"mini-gl/internal/app"
	"mini-gl/internal/config"
	"mini-gl/internal/graphics"
)

var (
	configPath = flag.String("config", "config.toml", "path to the TOML config file")
	cpuprofile = flag.String("cpuprofile", "", "write a CPU profile to this file")
)

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Printf("unable to create cpu-profile %q: %v", *cpuprofile, err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Printf("unable to start cpu-profile: %v", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	ctx, err := graphics.NewContext(graphics.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		return -1
	}
	defer func() {
		if err := ctx.Close(); err != nil {
			log.Printf("cleanup: %v", err)
		}
	}()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Printf("setup: %v", err)
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Printf("render: %v", err)
		return 1
	}
	return 0
}
