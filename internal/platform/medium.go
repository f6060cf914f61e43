package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/roster/pkg/adapters/fs"
	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/adapters/sqlite"
	"github.com/aretw0/roster/pkg/core"
)

// SQLiteFileName is the database file used when the sqlite adapter is given a directory.
const SQLiteFileName = "roster.db"

// OpenMedium opens the storage medium selected by the options.
// The uri is adapter-specific: a directory for "fs", a database file or
// directory for "sqlite", ignored otherwise.
// It returns the medium (nil for "none") and the resolved location.
func OpenMedium(uri string, opts ...Option) (core.Medium, string, error) {
	return openMedium(uri, buildOptions(opts))
}

func openMedium(uri string, o *options) (core.Medium, string, error) {
	if o.medium != nil {
		return o.medium, "", nil
	}

	switch o.adapter {
	case "fs":
		return initFS(uri, o)
	case "sqlite":
		return initSQLite(uri, o)
	case "memory":
		return memory.New(), "", nil
	case "none":
		return nil, "", nil
	default:
		return nil, "", fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// resolvePath applies dev safety to a user path.
func resolvePath(path string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only access is inherently safe; explicit opt-out wins too.
	bypassSafety := isReadOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveDataPath(path, useTemp)

	if IsDevRun() {
		switch {
		case isReadOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}
	if useTemp && resolvedPath != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}
	return resolvedPath
}

// initFS handles the initialization of the filesystem medium.
func initFS(path string, o *options) (core.Medium, string, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	resolvedPath := resolvePath(path, o)

	m := fs.NewMedium(fs.Config{
		Path:         resolvedPath,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
	if err := m.Initialize(); err != nil {
		return nil, "", err
	}
	return m, resolvedPath, nil
}

// initSQLite opens the database file, creating its directory when allowed.
func initSQLite(path string, o *options) (core.Medium, string, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)

	if path == ":memory:" {
		m, err := sqlite.New(path, sqlite.WithReadOnly(isReadOnly))
		if err != nil {
			return nil, "", err
		}
		return m, path, nil
	}

	if path == "" || filepath.Ext(path) == "" {
		path = filepath.Join(path, SQLiteFileName)
	}
	dir := resolvePath(filepath.Dir(path), o)
	dbPath := filepath.Join(dir, filepath.Base(path))

	if _, err := os.Stat(dbPath); err != nil {
		if mustExist || isReadOnly {
			return nil, "", fmt.Errorf("database does not exist: %s", dbPath)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, "", fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	m, err := sqlite.New(dbPath, sqlite.WithReadOnly(isReadOnly))
	if err != nil {
		return nil, "", err
	}
	return m, dbPath, nil
}
