package main

import (
	"flag"
	"os"

	"github.com/gin-gonic/gin"

	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/adapters/sqlite"
	"codeplan/internal/adapters/web"
	"codeplan/internal/config"
	"codeplan/internal/logging"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		settings = config.DefaultSettings()
	}

	dirFlag := flag.String("dir", settings.Dir, "project root (default: nearest folder with .codeplan)")
	addrFlag := flag.String("addr", settings.WebAddr, "listen address")
	levelFlag := flag.String("log-level", settings.LogLevel, "log level")
	noSearch := flag.Bool("no-search", false, "disable the search index")
	flag.Parse()
	settings.Dir = *dirFlag

	logger := logging.New(os.Stderr, *levelFlag)
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}
	if logging.ParseLevel(*levelFlag) > logging.ParseLevel("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	dir, err := settings.BacklogDir()
	if err != nil {
		logger.Fatal("codeplan-web", "err", err)
	}

	repo := filesystem.NewRepository(filesystem.WithLogger(logger))
	opts := []web.Option{web.WithLogger(logger)}

	if !*noSearch {
		index := sqlite.NewIndex()
		if err := index.Open(dir); err != nil {
			logger.Warn("search disabled", "err", err)
		} else {
			defer index.Close()
			logger.Debug("search index", "path", index.Path())
			opts = append(opts, web.WithIndex(index))
		}
	}

	srv := web.NewServer(repo, dir, opts...)
	if err := srv.Run(*addrFlag); err != nil {
		logger.Error("codeplan-web", "err", err)
		os.Exit(1)
	}
}
