// Copyright 2025 The EventServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the event search core server and CLI [DBG] application.

EventServe is the client-side core of an interactive event finder: a
debounced, race-safe place autocomplete plus a deterministic sort/paginate
pipeline over fetched event records. It can operate as a msgpack IPC server
for integration with a rendering front-end, or as a CLI application for
testing and debugging.

The suggestion engine waits for a quiet period after the last keystroke
before issuing a place lookup, and tags every lookup with a sequence number
so responses that were superseded by faster typing are discarded silently.
The result pipeline is pure: the sorted, paginated view is recomputed from
(results, sort key, page size, page) on every change.

# Usage

Start the server with default settings:

	eventserve

Use custom API endpoints and enable debug mode:

	eventserve -api http://localhost:8000 -places https://nominatim.openstreetmap.org -d

Run in CLI mode for interactive testing:

	eventserve -c

# Configuration

Runtime configuration is managed through a TOML file:

	[api]
	events_url = "http://localhost:8000"
	places_url = "https://nominatim.openstreetmap.org"
	timeout_ms = 10000

	[suggest]
	debounce_ms = 150
	min_chars = 2
	max_suggestions = 6

	[search]
	default_sort = "date-asc"
	page_size = 30

The config file is automatically created with defaults if it doesn't exist.
Endpoints can also come from EVENTSERVE_API_URL and EVENTSERVE_PLACES_URL
(a .env file is honored), which take priority over the TOML values.

# IPC Protocol

The server communicates via msgpack over stdin/stdout. Keystrokes are
acknowledged immediately and suggestion lists are pushed once the debounced
lookup resolves; search and navigation ops return the recomputed view.

Send a keystroke and a search:

	{"id": "in1", "op": "input", "q": "par"}
	{"id": "s1", "op": "search"}

See pkg/server for the full message reference.

# Command Line Flags

The following flags control application behavior:

	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Custom config file path
	-api string
	    Event search API base URL (overrides config and env)
	-places string
	    Place lookup API base URL (overrides config and env)
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/eventserve/internal/cli"
	"github.com/bastiangx/eventserve/pkg/config"
	"github.com/bastiangx/eventserve/pkg/events"
	"github.com/bastiangx/eventserve/pkg/places"
	"github.com/bastiangx/eventserve/pkg/search"
	"github.com/bastiangx/eventserve/pkg/server"
	"github.com/bastiangx/eventserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	Version = "0.3.0-beta"
	AppName = "eventserve"
	gh      = "https://github.com/bastiangx/eventserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the engine, session and clients together and hands control to
// the server or CLI loop. main() does not implement logic for them and only
// manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Custom config file path")
	apiURL := flag.String("api", "", "Event search API base URL")
	placesURL := flag.String("places", "", "Place lookup API base URL")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ EventServe ] Race-safe search core for event discovery!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// Env keys can live in a .env next to the binary.
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	eventsURL := firstNonEmpty(*apiURL, os.Getenv("EVENTSERVE_API_URL"), appConfig.API.EventsURL)
	lookupURL := firstNonEmpty(*placesURL, os.Getenv("EVENTSERVE_PLACES_URL"), appConfig.API.PlacesURL)
	timeout := time.Duration(appConfig.API.TimeoutMS) * time.Millisecond

	log.Debugf("events API: %s", eventsURL)
	log.Debugf("places API: %s", lookupURL)

	placeClient := places.NewClient(lookupURL, timeout)
	searchClient := search.NewClient(eventsURL, timeout)

	engine := suggest.NewEngine(placeClient, suggest.Options{
		Debounce:       time.Duration(appConfig.Suggest.DebounceMS) * time.Millisecond,
		MinChars:       appConfig.Suggest.MinChars,
		MaxSuggestions: appConfig.Suggest.MaxSuggestions,
	})
	defer engine.Close()

	session := search.NewSession(
		events.ParseSortKey(appConfig.Search.DefaultSort),
		appConfig.Search.PageSize,
	)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		debounce := time.Duration(appConfig.Suggest.DebounceMS) * time.Millisecond
		inputHandler := cli.NewInputHandler(engine, session, searchClient, debounce)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, session, searchClient)

	showStartupInfo(eventsURL, lookupURL)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(eventsURL, placesURL string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" EventServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("events API: ( %s )", eventsURL)
	log.Infof("places API: ( %s )", placesURL)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
