// file: store/notifying.go
package store

import (
	"context"
)

// change operations published after successful writes
const (
	OpAdd    = "add"
	OpSet    = "set"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Change describes one successful write.
type Change struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Op         string `json:"op"`
}

// Publisher receives change notifications. Publish must not block.
type Publisher interface {
	Publish(Change)
}

// Notifying wraps a Store and publishes a Change after each successful write.
type Notifying struct {
	Store
	pub Publisher
}

// NewNotifying decorates s so writes are announced to pub.
func NewNotifying(s Store, pub Publisher) *Notifying {
	return &Notifying{Store: s, pub: pub}
}

// Add stores the document and publishes the new id.
func (n *Notifying) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	id, err := n.Store.Add(ctx, collection, fields)
	if err == nil && id != "" {
		n.pub.Publish(Change{Collection: collection, ID: id, Op: OpAdd})
	}
	return id, err
}

// Set writes the document and publishes the change.
func (n *Notifying) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	err := n.Store.Set(ctx, collection, id, fields)
	if err == nil {
		n.pub.Publish(Change{Collection: collection, ID: id, Op: OpSet})
	}
	return err
}

// Update patches the document and publishes the change.
func (n *Notifying) Update(ctx context.Context, collection, id string, patch map[string]interface{}) error {
	err := n.Store.Update(ctx, collection, id, patch)
	if err == nil {
		n.pub.Publish(Change{Collection: collection, ID: id, Op: OpUpdate})
	}
	return err
}

// Delete removes the document and publishes the change.
func (n *Notifying) Delete(ctx context.Context, collection, id string) error {
	err := n.Store.Delete(ctx, collection, id)
	if err == nil {
		n.pub.Publish(Change{Collection: collection, ID: id, Op: OpDelete})
	}
	return err
}
