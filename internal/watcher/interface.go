package watcher

import "context"

// Watcher monitors a directory for newly arrived deck files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one deck file. Errors are logged and the
// watcher moves on; one bad deck never stops the watch loop.
type EventHandler func(ctx context.Context, filePath string) error
