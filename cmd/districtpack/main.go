package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/arbolado/districtpack/internal/logger"
	"github.com/arbolado/districtpack/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Dir    string `short:"d" long:"dir"    env:"DISTRICTS_DIR" description:"Directory with district GeoJSON files (default: data/districts next to the binary)"`
	Strict bool   `short:"s" long:"strict" description:"Abort the whole run on the first file error"`
	Backup bool   `short:"b" long:"backup" description:"Keep a .bak copy of each original file"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.Dir == "" {
		exe, err := os.Executable()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to locate executable")
		}
		opts.Dir = filepath.Join(filepath.Dir(exe), "data", "districts")
	}

	_, err := processor.Run(processor.RunOptions{
		Dir:    opts.Dir,
		Strict: opts.Strict,
		Backup: opts.Backup,
	})
	if err != nil {
		if errors.Is(err, processor.ErrNoFiles) {
			log.Warn().Err(err).Msg("Nothing to do")
			return
		}
		log.Fatal().Err(err).Msg("Compression run failed")
	}
}
