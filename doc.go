// Package roster is the Composition Root of a single-tenant HR console.
//
// It connects the resource stores (employees, employers, skill tests), the
// activity log and the activity-logging decorators with a storage medium
// chosen at runtime.
//
// Philosophy:
//
// Every piece of state lives in one synchronous, string-keyed medium, the way a
// browser keeps an app's data in its local storage. Each store holds an
// in-memory mirror of its list, writes through to the medium and replaces the
// mirror only after a successful write. Missing or empty data is reseeded with
// a demo dataset.
//
// Features:
//
//   - **Pluggable Media**: files (default, one JSON document per key), SQLite, memory.
//   - **Fail-Soft Reads**: corrupt or missing data falls back to the seed.
//   - **Activity Feed**: adds, updates and ratings are logged automatically.
//   - **Reactive**: stores publish change events; the fs medium reports writes
//     made by other processes so stores can reload.
//   - **Dev Safety**: under `go run`/`go test` data is sandboxed in the temp dir.
//
// Usage:
//
//	console, err := roster.Open("./.roster",
//		roster.WithLogger(logger),
//	)
//
//	// Add an employee (recorded in the activity feed)
//	e, err := console.Employees.Add(core.NewEmployee{Name: "Olga Sidorova"})
//
//	// Read the feed, newest first
//	for _, entry := range console.Activity.Recent() { ... }
package roster
