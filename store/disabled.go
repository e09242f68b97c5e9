// file: store/disabled.go
package store

import (
	"context"

	"mentora-hub/logger"
)

// Disabled stands in when no backend credential is configured. Writes are
// dropped and reads are empty; every call logs a warning.
type Disabled struct {
	Reason string
}

func (d Disabled) warn(op, collection string) {
	logger.Warn.Printf("[store.Disabled] %s on %q skipped: %s", op, collection, d.Reason)
}

// Add drops the document and returns an empty id.
func (d Disabled) Add(_ context.Context, collection string, _ map[string]interface{}) (string, error) {
	d.warn("add", collection)
	return "", nil
}

// Query returns no documents.
func (d Disabled) Query(_ context.Context, collection string, _ Query) ([]Record, error) {
	d.warn("query", collection)
	return nil, nil
}

// Get always reports ErrNotFound.
func (d Disabled) Get(_ context.Context, collection, _ string) (Record, error) {
	d.warn("get", collection)
	return Record{}, ErrNotFound
}

// Set drops the document.
func (d Disabled) Set(_ context.Context, collection, _ string, _ map[string]interface{}) error {
	d.warn("set", collection)
	return nil
}

// Update drops the patch.
func (d Disabled) Update(_ context.Context, collection, _ string, _ map[string]interface{}) error {
	d.warn("update", collection)
	return nil
}

// Delete does nothing.
func (d Disabled) Delete(_ context.Context, collection, _ string) error {
	d.warn("delete", collection)
	return nil
}
