package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"AmbientBoard/internal/config"
	"AmbientBoard/internal/export"
	"AmbientBoard/internal/logging"
	"AmbientBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file, reloaded on change")
	demoDir := flag.String("snapshot", "", "render a scripted demo frame into this directory and exit")
	shotsDir := flag.String("shots", "snapshots", "directory for Ctrl+S captures")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ambientboard: %v\n", err)
		os.Exit(1)
	}

	log, lvl, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ambientboard: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *demoDir != "" {
		path, err := export.RenderDemo(cfg, *demoDir, log)
		if err != nil {
			log.Fatal("demo snapshot failed", zap.Error(err))
		}
		log.Info("demo snapshot written", zap.String("path", path))
		return
	}

	opts := ui.Options{Config: cfg, Level: lvl, SnapshotDir: *shotsDir}
	if *configPath != "" {
		w, err := config.NewWatcher(*configPath, cfg, log.Named("config"))
		if err != nil {
			log.Warn("configuration hot reload unavailable", zap.Error(err))
		} else {
			defer w.Stop()
			opts.Watcher = w
		}
	}

	if err := ui.RunApp(opts, log); err != nil {
		log.Fatal("board failed", zap.Error(err))
	}
}
