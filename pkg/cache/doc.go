// Package cache stores compiled LaTeX keyed by a digest of the source,
// dialect and compiler version, so that unchanged inputs are not
// recompiled.
//
// Two stores implement Store: MemoryStore, and SQLiteStore backed by either
// modernc.org/sqlite (pure Go, the default) or github.com/mattn/go-sqlite3
// (cgo). A Scheduler prunes entries older than the configured TTL on a
// cron schedule.
//
// # Usage
//
//	store, err := cache.Open(cfg.Cache)
//	if err != nil {
//	    return err
//	}
//	if store != nil {
//	    defer store.Close()
//	    sched := cache.NewScheduler(store, cfg.Cache.TTL, cfg.Cache.PruneSchedule).
//	        WithLogger(logger)
//	    if err := sched.Start(ctx); err != nil {
//	        return err
//	    }
//	}
package cache
