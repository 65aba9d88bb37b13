package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/store"
	"github.com/danmuck/bitsctl/internal/transmission"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bitsctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to bitsctl.toml")
	dbPath := flag.String("db", "", "record the decode in this SQLite history")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.LogLevel != "" {
			logging.SetLevel(cfg.LogLevel)
		}
	}
	if *dbPath != "" {
		cfg.StorePath = *dbPath
	}

	input, err := readInput(flag.Arg(0))
	if err != nil {
		return err
	}

	rep, err := transmission.DecodeWithConfig(input, transmission.Config{
		MaxInputBytes: cfg.MaxInputBytes,
	})
	if err != nil {
		return err
	}

	fmt.Println(rep.VersionSum)
	fmt.Println(rep.Value.Dec())

	if cfg.StorePath != "" {
		s, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer s.Close()
		id, err := s.Add(input, rep)
		if err != nil {
			return err
		}
		log.Info().Str("id", id).Msg("decode recorded")
	}
	return nil
}

// readInput reads the transmission from the named file, or stdin when
// the argument is empty or "-".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
