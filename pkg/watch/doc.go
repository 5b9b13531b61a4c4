// Package watch re-runs taxonomy checks when files change or on a schedule.
//
// FileWatcher uses fsnotify to observe a single file or a directory tree and
// debounces bursts of events. Scheduler uses robfig/cron for periodic runs.
// Neither serialises the callbacks it triggers; callers that share state
// between a watcher and a scheduler must do so.
package watch
