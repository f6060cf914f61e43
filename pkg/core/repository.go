package core

import "context"

// Medium is the persistent, synchronous, string-keyed storage a console runs on.
// It plays the part of a browser profile's local storage: values are opaque
// strings and every call completes before returning.
//
// Adhering to this interface keeps the stores independent of the underlying
// mechanism (files, SQLite, process memory).
type Medium interface {
	// Get returns the raw value stored under key and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists the stored keys in lexical order.
	Keys() ([]string, error)
}

// Watchable is implemented by media that can report writes made by other
// processes (the equivalent of another browser tab touching the same profile).
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by media holding OS resources.
type Closer interface {
	Close() error
}
