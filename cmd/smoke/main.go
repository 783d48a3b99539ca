package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/platos/internal/smoke"
	"github.com/okian/platos/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumDishes   = 200
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8000", "Base URL of the service")
		numDishes = flag.Int("dishes", defaultNumDishes, "Number of dishes to create")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Also write logs to this file")
		verbose   = flag.Bool("verbose", false, "Log every request")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	closer, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)

	_, err = smoke.Run(ctx, &smoke.Config{
		BaseURL:   *baseURL,
		NumDishes: *numDishes,
		Workers:   *workers,
		Timeout:   *timeout,
		LogFile:   *logFile,
		Verbose:   *verbose,
	})
	cancel()
	if err != nil {
		logger.Get().Error(context.Background(), "smoke test failed", logger.Error(err))
	}
	_ = closer.Close()
	if err != nil {
		os.Exit(1)
	}
}
