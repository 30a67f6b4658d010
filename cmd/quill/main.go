package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/app"
	"github.com/xonecas/quill/internal/cfg"
)

func main() {
	if err := setupFileLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to setup logging: %v\n", err)
	}

	flagConfig := flag.String("config", "", "path to quill.toml")
	flag.Parse()

	configPath := *flagConfig
	if configPath == "" {
		configPath = cfg.DefaultPath()
	}
	c, err := cfg.Load(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app.New(c, flag.Args()))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running quill: %v\n", err)
		os.Exit(1)
	}
}

// setupFileLogging sends zerolog output to a file: the terminal belongs to
// the editor.
func setupFileLogging() error {
	path := os.Getenv("QUILL_LOG")
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "quill", "quill.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return nil
}
