// Package main is the entry point for the shieldbar status indicator.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shelepuginivan/shieldbar"
	"github.com/shelepuginivan/shieldbar/internal/config"
)

// toolkit is a shieldbar.Toolkit that owns the UI event loop.
type toolkit interface {
	shieldbar.Toolkit

	// Run calls ready on the UI thread and blocks on the event loop.
	Run(ctx context.Context, ready func() error) error
}

func main() {
	configPath := flag.String("config", "", "Path to the configuration file")
	mode := flag.String("mode", "", "Override the click mode (popover or menu)")
	flag.Parse()

	log.SetPrefix("[shieldbar] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	path := *configPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			log.Fatalf("Failed to locate configuration: %v", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *mode != "" {
		cfg.Mode = *mode
		config.Normalize(cfg)
		if err := config.Validate(cfg); err != nil {
			log.Fatalf("Invalid -mode: %v", err)
		}
	}

	tk, closeToolkit, err := newToolkit()
	if err != nil {
		log.Fatalf("Failed to initialize toolkit: %v", err)
	}
	defer closeToolkit()

	app := shieldbar.New(tk, shieldbar.StaticRows(), cfg.Options())

	watcher, err := config.NewWatcher(path, func(next *config.Config) {
		tk.Post(func() {
			if err := app.Reload(next.Options()); err != nil {
				log.Printf("Failed to apply configuration: %v", err)
			}
		})
	})
	if err != nil {
		log.Fatalf("Failed to create configuration watcher: %v", err)
	}

	if err := watcher.Start(); err != nil {
		log.Printf("Configuration changes will not be applied: %v", err)
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting in %s mode (PID %d)", cfg.Mode, os.Getpid())

	if err := tk.Run(ctx, app.Start); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	log.Println("Stopped")
}
