// Command blurhash encodes images into BlurHash strings and renders them back.
//
// Usage:
//
//	blurhash [global options] encode [-x N] [-y N] <image>...
//	blurhash [global options] decode [-punch N] [-channels 3|4] <hash> <width> <height> <output>
//	blurhash [global options] valid <hash>...
//	blurhash [global options] show [-width N] [-punch N] <hash>
//	blurhash [global options] index [-o file] [-workers N] [-x N] [-y N] <dir>
//
// Short forms "e X Y <image>" and "d <hash> <width> <height> <output> [punch]"
// are accepted too.
package main

import (
	"flag"
	"fmt"
	"os"

	"blurhash/lib/config"
	fl "blurhash/lib/filelogger"
	"blurhash/lib/logx"
)

type env struct {
	cfg config.Config
	lx  logx.LoggerX
	log logx.Logger
}

type command func(e *env, args []string) error

var commands = map[string]command{
	"encode": runEncode,
	"e":      runEncodeShort,
	"decode": runDecode,
	"d":      runDecodeShort,
	"valid":  runValid,
	"show":   runShow,
	"index":  runIndex,
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  blurhash [global options] <command> [options] [args]

Commands:
  encode [-x N] [-y N] <image>...                  print blurhash of images
  e <x> <y> <image>                                same, positional form
  decode [-punch N] [-channels 3|4] <hash> <w> <h> <output>
                                                   render hash into image file
  d <hash> <w> <h> <output> [punch]                same, positional form
  valid <hash>...                                  check hashes
  show [-width N] [-punch N] <hash>                preview hash in terminal
  index [-o file] [-workers N] [-x N] [-y N] <dir> build placeholder index

Global options:
`)
	flag.PrintDefaults()
}

func main() {
	cfgPath := flag.String("config", "", "TOML config `file`")
	logLevel := flag.String("loglevel", "", "log `level` (debug, info, notice, warn, error, critical)")
	logColor := flag.String("color", "", "log coloring: auto, on, off")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.Default
	var err error
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "blurhash: %v\n", err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logColor != "" {
		cfg.Log.Color = *logColor
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "blurhash: %v\n", err)
		os.Exit(1)
	}

	lgr := fl.NewFileLogger(os.Stderr, cfg.LogLevel(), cfg.ColorMode())
	e := &env{cfg: cfg, lx: lgr, log: logx.NewLogToX(lgr, "main")}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "blurhash: unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err = cmd(e, args[1:]); err != nil {
		e.log.LogPrintf(logx.DEBUG, "%s failed: %#v", args[0], err)
		fmt.Fprintf(os.Stderr, "blurhash: %v\n", err)
		os.Exit(1)
	}
}
