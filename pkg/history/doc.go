// Package history records the outcome of taxonomy check runs.
//
// Every run through the command line or the watcher can be persisted as a
// Record holding the file, the verdict, the first failed check, and the
// diagnostic counts. Two backends are provided:
//
//   - SQLiteStore: durable storage in a single SQLite file (pure Go driver)
//   - MemoryStore: in-process storage for tests and one-shot runs
//
// Use Open to build the backend selected by configuration:
//
//	store, err := history.Open(cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	rec := history.NewRecord(path, result)
//	if err := store.Save(ctx, rec); err != nil {
//		return err
//	}
//
// Stores return records newest first.
package history
