package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fianchetto/internal/server"
)

const name = "Fianchetto"

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	var err = run(logger)
	if err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger) error {
	var (
		flgConfig     string
		flgAddr       string
		flgHash       int
		flgDifficulty string
	)
	flag.StringVar(&flgConfig, "config", "", "path to JSON config file")
	flag.StringVar(&flgAddr, "addr", "", "listen address")
	flag.IntVar(&flgHash, "hash", 0, "transposition table size in megabytes")
	flag.StringVar(&flgDifficulty, "difficulty", "", "easy, medium, hard or expert")
	flag.Parse()

	var cfg = server.DefaultConfig()
	if flgConfig != "" {
		var err error
		cfg, err = server.LoadConfig(flgConfig)
		if err != nil {
			return err
		}
	}
	if flgAddr != "" {
		cfg.Addr = flgAddr
	}
	if flgHash > 0 {
		cfg.Hash = flgHash
	}
	if flgDifficulty != "" {
		cfg.Difficulty = flgDifficulty
	}

	logger.Println(name,
		"VersionName", versionName,
		"BuildDate", buildDate,
		"GitRevision", gitRevision,
		"RuntimeVersion", runtime.Version(),
		"GOARCH", runtime.GOARCH,
		"GOOS", runtime.GOOS,
		"NumCPU", runtime.NumCPU(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv = server.New(cfg, logger)
	return srv.Run(ctx)
}
