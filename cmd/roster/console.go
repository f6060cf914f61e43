package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/audit"
)

// openConsole opens the console described by the loaded configuration.
func openConsole() (*platform.Console, error) {
	path := cfg.Storage.Path
	if path == "" && cfg.Storage.Adapter != "memory" && cfg.Storage.Adapter != "none" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = platform.DefaultDataPath(wd)
	}

	return platform.Open(path,
		platform.WithAdapter(cfg.Storage.Adapter),
		platform.WithLogger(logger),
		platform.WithReadOnly(cfg.Storage.ReadOnly),
		platform.WithDevSafety(!cfg.Storage.Unsafe),
		platform.WithActors(audit.Actors{
			Employees: cfg.Actors.Employees,
			Employers: cfg.Actors.Employers,
		}),
	)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
