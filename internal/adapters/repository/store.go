// Package repository defines the phonebook store interface and its in-memory implementation.
package repository

import "context"

// Store provides read/write access to the phonebook.
type Store interface {
	// Put associates phoneNumber with name. An existing number for name is
	// replaced (last write wins); replaced reports whether that happened.
	Put(ctx context.Context, name, phoneNumber string) (replaced bool, err error)

	// Get returns the number stored for name, or ErrNotFound.
	Get(ctx context.Context, name string) (string, error)

	// List returns a copy of the whole phonebook. Callers own the map.
	List(ctx context.Context) (map[string]string, error)

	// Count returns the number of contacts.
	Count(ctx context.Context) int
}
