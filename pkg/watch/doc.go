// Package watch recompiles whiteboard sources when they change on disk.
//
// A Watcher wraps fsnotify. Directories are watched recursively, skipping
// hidden ones, and only files with a configured extension are reported.
// Files added by name are reported whatever their extension. Editors tend to
// emit several events per save, so events are debounced per path: the
// handler runs once the path has been quiet for the configured interval.
//
// # Usage
//
//	w, err := watch.New(cfg.Watch, func(ctx context.Context, path string) {
//	    compileFile(ctx, path)
//	})
//	if err != nil {
//	    return err
//	}
//	if err := w.Add("notes/"); err != nil {
//	    return err
//	}
//	return w.Run(ctx)
package watch
