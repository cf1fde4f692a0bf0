package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hbomb79/Trawl/internal"
	"github.com/hbomb79/Trawl/pkg/logger"
)

var log = logger.Get("Main")

// main is the entry point to the program. Trawl runs in one of two modes:
// with --serve it hosts the HTTP API, otherwise it expects a page URL as
// the sole positional argument and runs the discovery pipeline once,
// printing the result to stdout.
func main() {
	serve := flag.Bool("serve", false, "run the HTTP API server instead of a one-shot fetch")
	configPath := flag.String("config", "", "path to a YAML configuration file")
	format := flag.String("format", "table", "output format for one-shot fetches (table|json)")
	output := flag.String("output", "", "save one-shot fetch results to this file (JSON)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	timeout := flag.Int("timeout", 0, "request timeout in seconds (overrides configuration)")
	flag.Parse()

	if *verbose {
		logger.SetMinLoggingLevel(logger.VERBOSE.Level())
	}

	config := internal.TrawlConfig{}
	var configErr error
	if *configPath != "" {
		configErr = config.LoadFromFile(*configPath)
	} else {
		configErr = config.LoadFromEnv()
	}
	if configErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", configErr)
		os.Exit(1)
	}

	if *timeout > 0 {
		config.Fetcher.TimeoutSeconds = *timeout
	}

	if *serve {
		runServer(config)
		return
	}

	pageURL := flag.Arg(0)
	if pageURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: trawl [flags] <url>  (or trawl --serve)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	runFetch(config, pageURL, *format, *output)
}

func runServer(config internal.TrawlConfig) {
	trawl, err := internal.New(config)
	if err != nil {
		log.Emit(logger.FATAL, "Failed to initialise Trawl: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := trawl.Run(ctx); err != nil {
		log.Emit(logger.FATAL, "Trawl terminated abnormally: %v\n", err)
		os.Exit(1)
	}
}

func runFetch(config internal.TrawlConfig, pageURL string, format string, output string) {
	trawl, err := internal.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fetching videos from: %s\n", pageURL)
	result, err := trawl.Fetcher().FetchVideosFromURL(context.Background(), pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := printResult(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if output != "" {
		if err := saveResult(result, output); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results saved to %s\n", output)
	}
}
