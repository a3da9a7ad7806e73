// Copyright 2026 The HistServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the command continuation server and CLI [DBG] application.

HistServe suggests continuations of a partially typed shell command based
on previously executed commands. It indexes command lines token by token in
a frequency-weighted trie and resolves the word being typed with exact
prefix matching, a fuzzy sub-token fallback, and an unambiguous deep-chain
completion. It can operate as a MessagePack IPC server for integration with
shells and editors, or as a CLI application for testing and debugging.

# Usage

Start the server, replaying the default shell history:

	histserve

Use a specific history log and enable debug mode:

	histserve -log ~/.zsh_history -d

Run in CLI mode for interactive testing:

	histserve -c -limit 5

The history log is plain text with one command per line; zsh extended
format entries are unwrapped during replay. If no -log flag is given the
resolver tries $HISTFILE and the conventional shell history files.

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, history log settings, and CLI defaults:

	[server]
	max_limit = 64
	max_input = 512
	enable_filter = true

	[history]
	log_file = ""
	max_replay_lines = 10000
	persist_records = true

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads configuration periodically without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests carry
an op field selecting the operation; responses include microsecond timing.

Ask for continuations of the in-progress input line:

	{"id": "req1", "op": "suggest", "in": "git ch", "l": 10}

Receive ranked continuations with splice hints:

	{"id": "req1", "s": [{"v": "checkout", "sp": true, "r": 1},
	                     {"v": "checkout master --option", "sp": false, "r": 2}], "c": 2, "t": 85}

Record an executed command (persisted to the log before indexing):

	{"id": "rec1", "op": "record", "line": "git checkout master"}

Search whole historical lines by prefix:

	{"id": "srch1", "op": "search", "in": "git p", "l": 5}

# Server Mode

The default mode starts a MessagePack IPC server that processes requests
from stdin and writes responses to stdout. Logs go to stderr so the
protocol stream stays clean.

	srv := server.NewServer(engine, index, appender, cfg, configPath)
	err := srv.Start()

# CLI Mode

CLI mode provides an interactive interface for testing and debugging.
It reads partial command lines from stdin and displays continuations with
their splice flags, and supports :add, :find and :stats commands.

	inputHandler := cli.NewInputHandler(engine, index, limit, searchLimit, maxInput)
	err := inputHandler.Start()

# Completion Engine

The core functionality is provided by the history package, which implements
the token trie with per-edge frequencies and the continuation resolver.

	engine := history.NewTrie()
	engine.Add("git checkout master")
	suggestions := engine.ContinuationsFor("git ch")

# Command Line Flags

The following flags control application behavior:

	-log string
	    History log file to replay (default: $HISTFILE or shell defaults)
	-config string
	    Config file path (default: platform config dir)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of continuations to return (default from config)
	-lines int
	    Maximum history lines to replay (0 for all)
	-no-persist
	    Do not append recorded lines to the history log
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/histserve/histserve/internal/cli"
	"github.com/histserve/histserve/internal/utils"
	"github.com/histserve/histserve/pkg/config"
	"github.com/histserve/histserve/pkg/histlog"
	"github.com/histserve/histserve/pkg/history"
	"github.com/histserve/histserve/pkg/search"
	"github.com/histserve/histserve/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "histserve"
	gh      = "https://github.com/histserve/histserve"
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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	logFile := flag.String("log", "", "History log file to replay")
	configFile := flag.String("config", "", "Config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of continuations to return")
	replayLines := flag.Int("lines", defaultConfig.History.MaxReplayLines, "Maximum history lines to replay (use 0 for all)")
	noPersist := flag.Bool("no-persist", false, "Do not append recorded lines to the history log")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ HistServe ] Serves shell command continuations from your history!")
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

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	configPath := *configFile
	if configPath == "" {
		configPath, err = pathResolver.GetConfigPath("histserve-config.toml")
		if err != nil {
			log.Fatalf("Failed to determine config path: (%v)", err)
		}
	}
	log.Debugf("Using config file: (%s)", configPath)

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flag beats config for the log location.
	requestedLog := *logFile
	if requestedLog == "" {
		requestedLog = appConfig.History.LogFile
	}

	engine := history.NewTrie()
	index := search.NewLineIndex()

	histPath, err := pathResolver.GetHistoryFile(requestedLog)
	if err != nil {
		log.Warn("No history log found, starting with an empty index...")
	} else {
		lines, err := histlog.Load(histPath, *replayLines)
		if err != nil {
			log.Fatalf("Failed to load history log %s: %v", histPath, err)
		}
		histlog.Replay(engine, lines)
		histlog.Replay(index, lines)
		log.Debugf("Replayed %d lines from %s", len(lines), histPath)
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"limit", *limit,
			"searchLimit", appConfig.CLI.DefaultSearchLimit,
			"maxInput", appConfig.Server.MaxInput)

		inputHandler := cli.NewInputHandler(engine, index, *limit,
			appConfig.CLI.DefaultSearchLimit, appConfig.Server.MaxInput)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")

	var appender *histlog.Appender
	if histPath != "" && !*noPersist && appConfig.History.PersistRecords {
		appender, err = histlog.NewAppender(histPath)
		if err != nil {
			log.Fatalf("Failed to open history log for append: %v", err)
		}
		defer appender.Close()
	}

	srv := server.NewServer(engine, index, appender, appConfig, configPath)

	showStartupInfo(histPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(histPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	if histPath == "" {
		histPath = "(none)"
	}

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " HistServe ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("history log: ( %s )", histPath)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
