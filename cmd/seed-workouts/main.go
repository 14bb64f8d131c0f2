package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/javy001/trainingplanner/internal/seedtest"
)

// Default configuration constants.
const (
	defaultWeeks      = 4
	defaultPerWeek    = 6
	defaultWorkers    = 4
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the service")
		weeks   = flag.Int("weeks", defaultWeeks, "Number of past weeks to fill")
		perWeek = flag.Int("per-week", defaultPerWeek, "Workouts per week")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedtest.ShowHelp()
		return
	}

	if err := seedtest.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seedtest.Config{
		BaseURL: *baseURL,
		Weeks:   *weeks,
		PerWeek: *perWeek,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := seedtest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
