// Package logstore persists the append-only change log as one growing
// text blob per deployment environment. All backends satisfy the same
// Store contract; callers never depend on the backing technology.
package logstore

import "context"

// Metadata is lightweight operational introspection for a blob.
type Metadata struct {
	SizeBytes int64  `json:"sizeBytes"`
	Source    string `json:"source"`
}

// Store is the change-log blob contract.
//
// Append must not silently drop writes under concurrent appenders;
// backends use their native atomic-append primitive where one exists.
// ReadAll returns "" (not an error) when no blob has been written yet.
// Overwrite replaces the entire blob and exists for human-supervised
// administrative edits only; it is inherently racy against concurrent
// appends.
type Store interface {
	Append(ctx context.Context, text string) error
	ReadAll(ctx context.Context) (string, error)
	Overwrite(ctx context.Context, text string) error
	Metadata(ctx context.Context) (Metadata, error)
}
