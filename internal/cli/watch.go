package cli

import (
	"context"
	"log/slog"
	"time"
)

// reloadDelay lets editors finish writing before the table is read again.
var reloadDelay = 100 * time.Millisecond

// Reloader is the part of the engine hot reload needs.
type Reloader interface {
	Watch(ctx context.Context) (<-chan string, error)
	Reload(ctx context.Context) error
}

// WatchAndReload reloads the table on every change event until ctx is done
// or the watcher closes. A failed reload keeps the previous table active and
// is not announced. notify may be nil.
func WatchAndReload(ctx context.Context, engine Reloader, logger *slog.Logger, notify func(event string)) error {
	events, err := engine.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				logger.Info("Watcher closed")
				return nil
			}
			logger.Info("Change detected, reloading table", "event", event)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(reloadDelay):
			}

			if err := engine.Reload(ctx); err != nil {
				logger.Error("Reload failed, keeping previous table", "err", err)
				continue
			}
			logger.Info("Table reloaded", "event", event)
			if notify != nil {
				notify(event)
			}
		}
	}
}
