// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the waybar-metar service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wneessen/waybar-metar/internal/config"
	"github.com/wneessen/waybar-metar/internal/http"
	"github.com/wneessen/waybar-metar/internal/i18n"
	"github.com/wneessen/waybar-metar/internal/logger"
	"github.com/wneessen/waybar-metar/internal/service"
	"github.com/wneessen/waybar-metar/internal/station"
	"github.com/wneessen/waybar-metar/internal/station/provider/aviationweather"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	lookup := flag.String("lookup", "", "comma separated list of stations to look up, e.g. KSFO,KOAK")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	if *lookup != "" {
		client := http.New(log)
		client.SetRetries(conf.METAR.Retries)
		if err = lookupStations(ctx, os.Stdout, aviationweather.New(client, ""), *lookup); err != nil {
			log.Error("failed to look up stations", logger.Err(err))
			os.Exit(1)
		}
		return
	}

	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize waybar-metar service", logger.Err(err))
		os.Exit(1)
	}

	// Start the service loop
	log.Info(t.Get("starting waybar-metar service"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error(t.Get("failed to start waybar-metar service"), logger.Err(err))
	}
	log.Info(t.Get("shutting down waybar-metar service"))
}

// loadConfig reads the config from the given file, from the default location or, if neither
// exists, from the environment only.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "waybar-metar", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}

// lookupStations prints the details of each station in list, in the order given.
func lookupStations(ctx context.Context, out io.Writer, lookup station.Lookup, list string) error {
	ids := station.Normalize(station.Parse(list))
	if len(ids) == 0 {
		return station.ErrNoStations
	}

	ctxLookup, cancelLookup := context.WithTimeout(ctx, aviationweather.APITimeout*2)
	defer cancelLookup()
	infos, err := lookup.Lookup(ctxLookup, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		info, ok := infos[id]
		if !ok {
			info = station.Info{ID: id}
		}
		if _, err = fmt.Fprintln(out, info); err != nil {
			return fmt.Errorf("failed to write station details: %w", err)
		}
	}
	return nil
}
