// Package store is the document store accessor: add, query, get, set, update and
// delete over named collections of schemaless documents.
// File: store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

type serverTimestamp struct{}

func (serverTimestamp) String() string { return "ServerTimestamp" }

// ServerTimestamp is replaced by the backend's clock at write time.
var ServerTimestamp interface{} = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp placeholder.
func IsServerTimestamp(v interface{}) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// Filter is an equality condition on one field.
type Filter struct {
	Field string
	Value interface{}
}

// Query selects documents from a collection.
type Query struct {
	OrderBy    string
	Descending bool
	Where      []Filter
	Limit      int
}

// Record is a stored document.
type Record struct {
	ID     string
	Fields map[string]interface{}
}

// Store is implemented by every persistence backend.
type Store interface {
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	Query(ctx context.Context, collection string, q Query) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Update(ctx context.Context, collection, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
}

// ------------------- shared query helpers -------------------

func matches(fields map[string]interface{}, where []Filter) bool {
	for _, f := range where {
		if compareValues(fields[f.Field], f.Value) != 0 {
			return false
		}
	}
	return true
}

func sortRecords(records []Record, orderBy string, desc bool) {
	if orderBy == "" {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		c := compareValues(records[i].Fields[orderBy], records[j].Fields[orderBy])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// compareValues orders nil first, then times, numbers and strings.
func compareValues(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyFields(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func validName(collection, id string) error {
	if collection == "" {
		return errors.New("collection name is required")
	}
	if id == "" || strings.Contains(id, "/") {
		return fmt.Errorf("invalid document id %q", id)
	}
	return nil
}
