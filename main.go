package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rsookram/gallery-desktop/internal/audio"
	"github.com/rsookram/gallery-desktop/internal/engine"
	"github.com/rsookram/gallery-desktop/internal/filesystem"
	"github.com/rsookram/gallery-desktop/internal/settings"
)

func main() {
	configPath := flag.String("config", "./config/settings.json", "path to the settings file")
	selectMode := flag.Bool("select", false, "start in the cover selector")
	debug := flag.Bool("debug", false, "enable debug logging and the on-screen overlay")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] PATH...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *selectMode, *debug, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, selectMode, debug bool, args []string) error {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfgManager := settings.NewManager(configPath, settings.WithLogger(logger))
	if err := cfgManager.Load(); err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
	}
	cfg := cfgManager.Config()
	if debug {
		cfg.DebugMode = true
		cfg.LogLevel = "debug"
	}
	if l, err := cfg.Level(); err == nil {
		level.Set(l)
	}

	paths, err := filesystem.NewManager(filesystem.WithLogger(logger)).ResolvePaths(args)
	if err != nil {
		return err
	}

	sounds := audio.NewManager(
		audio.WithLogger(logger),
		audio.WithVolume(cfg.SFXVolume),
		audio.WithMuted(cfg.Muted),
	)
	sounds.Init()
	defer sounds.Cleanup()
	if n, err := sounds.LoadSounds(cfg.SoundsPath); err != nil {
		logger.Warn("Failed to load sound effects", "error", err)
	} else {
		logger.Debug("Loaded sound effects", "count", n)
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSounds(sounds),
	}
	if selectMode {
		opts = append(opts, engine.WithSelector())
	}

	game, err := engine.NewGame(cfg, paths, opts...)
	if err != nil {
		return err
	}
	return game.Run()
}
