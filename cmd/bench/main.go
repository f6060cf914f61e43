package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/core"
)

func main() {
	count := flag.Int("count", 500, "Number of employees to add per adapter")
	keep := flag.Bool("keep", false, "Keep the benchmark data after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "roster_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark (%d adds per adapter, every add rewrites the whole list)\n", *count)
	for _, adapter := range []string{"memory", "fs", "sqlite"} {
		path := filepath.Join(benchDir, adapter)
		write, cold, err := run(path, adapter, *count, logger)
		if err != nil {
			fmt.Printf("  %-7s failed: %v\n", adapter, err)
			continue
		}
		fmt.Printf("  %-7s writes: %-12v (%v/op)  reopen: %v\n",
			adapter, write, write/time.Duration(*count), cold)
	}
	fmt.Printf("--------------------------------------------------\n")
}

// run adds count employees, then measures how long a second console takes to
// load them back.
func run(path, adapter string, count int, logger *slog.Logger) (time.Duration, time.Duration, error) {
	opts := []platform.Option{platform.WithAdapter(adapter), platform.WithLogger(logger)}

	console, err := platform.Open(path, opts...)
	if err != nil {
		return 0, 0, err
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		if _, err := console.Employees.Add(core.NewEmployee{
			Name:   fmt.Sprintf("Employee %d", i),
			Skills: []string{"Go", "SQL"},
		}); err != nil {
			console.Close()
			return 0, 0, err
		}
	}
	write := time.Since(start)
	if err := console.Close(); err != nil {
		return 0, 0, err
	}

	if adapter == "memory" {
		return write, 0, nil
	}

	start = time.Now()
	again, err := platform.Open(path, opts...)
	if err != nil {
		return 0, 0, err
	}
	defer again.Close()
	if got := again.Employees.Len(); got < count {
		return 0, 0, fmt.Errorf("reopened console holds %d employees, want at least %d", got, count)
	}
	return write, time.Since(start), nil
}
