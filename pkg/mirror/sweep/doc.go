// Package sweep keeps materialized mirrors fresh between sessions.
//
// The gateway only refreshes a mirror when a client asks for it; the
// Sweeper walks the repository root and refreshes every mirror it finds,
// bounded by a concurrency limit and a per-refresh timeout. Each refresh
// takes the same per-mirror advisory lock the gateway uses, non-blocking:
// a mirror busy in a live SSH session is skipped rather than queued.
//
// Scheduler runs sweeps on a cron schedule, Metrics exposes sweep activity
// to Prometheus, and ConfigWatcher hot-reloads the configuration file for
// long-running daemons.
package sweep
