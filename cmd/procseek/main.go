// Copyright 2025 The procseek Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the procseek process lookup CLI and IPC server.

procseek takes one snapshot of the running processes at startup and resolves
free-form queries against it: a PID, a process name or something close to
one. Each query selects a single process whose PID, name, resident memory and
CPU time are printed.

# Usage

Start the interactive prompt:

	procseek

Enable debug logging, which also lists every ranked candidate:

	procseek -d

Run against a fixed process list instead of the live system:

	procseek -fixture examples/fixture.toml

# Queries

A query is a search term optionally followed by a sort directive:

	nginx
	1234
	chrome sort:memory
	worker sort:cpu

Names are compared with Jaro-Winkler similarity, case-insensitively. A term
equal to a PID always matches that process. Only candidates scoring above the
threshold (0.7 by default) are kept; the best one wins. sort:memory prefers
the largest resident set among them, sort:cpu the most CPU time.

A line starting with ? lists autocomplete candidates instead:

	?ngi
	205 - nginx
	999 - nginx-worker

Empty input or a query without a match prints an error and prompts again.
End of input or Ctrl+C exits normally.

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first
run in the user config dir:

	[match]
	threshold = 0.7

	[cli]
	prompt = "Enter PID or process name: "
	candidates = 0
	highlight = true

	[log]
	level = "warn"

	[source]
	proc_mount = "/proc"

Flags override the file for a single run.

# IPC Protocol

With -ipc, procseek reads MessagePack requests from stdin and writes
responses to stdout:

	{"id": "1", "action": "match", "q": "nginx sort:memory", "l": 5}
	{"id": "2", "action": "complete", "p": "ngi"}
	{"id": "3", "action": "detail", "pid": 205}

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-config string
	    Path to a custom config file
	-ipc
	    Serve MessagePack requests on stdin/stdout
	-fixture string
	    TOML process list to use instead of procfs
	-proc string
	    procfs mount point (default from config)
	-threshold float
	    Minimum score a candidate must exceed (default from config)
	-candidates int
	    Number of ranked candidates to print per query (default from config)
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/bastiangx/procseek/internal/cli"
	"github.com/bastiangx/procseek/internal/logger"
	"github.com/bastiangx/procseek/internal/utils"
	"github.com/bastiangx/procseek/pkg/config"
	"github.com/bastiangx/procseek/pkg/format"
	"github.com/bastiangx/procseek/pkg/match"
	"github.com/bastiangx/procseek/pkg/procindex"
	"github.com/bastiangx/procseek/pkg/procsource"
	"github.com/bastiangx/procseek/pkg/server"
	"github.com/bastiangx/procseek/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "procseek"
	gh      = "https://github.com/bastiangx/procseek"
)

// sigHandler exits normally on interrupt, after the query in flight if any.
func sigHandler(active *atomic.Pointer[cli.InputHandler]) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		if h := active.Load(); h != nil {
			h.WaitIdle()
		}
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow: config, snapshot, then REPL or IPC.
func main() {
	var active atomic.Pointer[cli.InputHandler]
	sigHandler(&active)

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	configFile := flag.String("config", "", "Path to custom config file")
	ipcMode := flag.Bool("ipc", false, "Serve MessagePack requests on stdin/stdout")
	fixtureFile := flag.String("fixture", "", "TOML process list to use instead of procfs")
	procMount := flag.String("proc", "", "procfs mount point (default from config)")
	threshold := flag.Float64("threshold", -1, "Minimum score a candidate must exceed (default from config)")
	candidates := flag.Int("candidates", -1, "Number of ranked candidates to print per query (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
		pathResolver = nil
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile, pathResolver)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(appConfig.LogLevel(), *debugMode)
	if configPath != "" {
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))
	}
	if pathResolver != nil {
		log.Debug("Runtime", "info", pathResolver.GetRuntimeInfo())
	}

	if *threshold >= 0 {
		appConfig.Match.Threshold = *threshold
	}
	if *candidates >= 0 {
		appConfig.CLI.Candidates = *candidates
	}
	if *procMount != "" {
		appConfig.Source.ProcMount = *procMount
	}

	source, err := openSource(*fixtureFile, appConfig.Source.ProcMount, pathResolver)
	if err != nil {
		log.Fatalf("Failed to open process source: %v", err)
	}

	records, err := source.Snapshot()
	if err != nil {
		log.Fatalf("Failed to take process snapshot: %v", err)
	}
	index := procindex.New(records)
	log.Debug("Snapshot taken", "stats", index.Stats())

	matcher := match.NewMatcher(index, source, appConfig.Match.Threshold)
	log.Debugf("Matching with threshold %.2f", matcher.Threshold())
	completer := suggest.NewCompleter(index)
	log.Debug("Completer ready", "stats", completer.Stats())

	if *ipcMode {
		srv := server.NewServer(matcher, completer, source, os.Stdin, os.Stdout)
		showStartupInfo(index.Len(), configPath)
		if err := srv.Start(); err != nil {
			log.Fatalf("IPC server error: %v", err)
		}
		return
	}

	inputHandler := cli.NewInputHandler(matcher, completer, source, cli.Options{
		Prompt:     appConfig.CLI.Prompt,
		Candidates: appConfig.CLI.Candidates,
		Highlight:  appConfig.CLI.Highlight,
	}, os.Stdin, os.Stdout, os.Stderr)
	active.Store(inputHandler)

	if err := inputHandler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

// openSource picks the fixture when one is given, the live procfs otherwise.
func openSource(fixture, procMount string, resolver *utils.PathResolver) (procsource.Source, error) {
	if fixture == "" {
		return procsource.NewProcFS(procMount)
	}

	path := fixture
	if resolver != nil {
		resolved, err := resolver.ResolveFile(fixture)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	log.Debugf("Using fixture at: %s", path)
	return procsource.LoadFixture(path)
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ procseek ] Finds processes by PID or fuzzy name")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo goes to stderr, stdout belongs to the protocol.
func showStartupInfo(processes int, configPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" procseek  ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("snapshot: %s processes", format.WithCommas(processes))
	if configPath != "" {
		log.Infof("config: ( %s )", configPath)
	}
	log.Info("status: ready")
	println("===========")

	log.SetLevel(currentLevel)
}
