// Package dashboard implements the interactive TUI for a monitoring session.
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: cursor, the last host list and stats snapshot, help and footer state
//   - Update: key presses become supervisor commands; ticks re-read the store
//   - View: host list on the left, statistics table on the right, footer below
//
// # Threading
//
// Update is the only goroutine that calls the supervisor's command methods.
// Probe loops write to the stats store concurrently; the dashboard only ever
// reads snapshots of it, once per refresh tick (default 250ms).
//
// # Keyboard Shortcuts
//
//	up/k, down/j  - Move the cursor (wraps around)
//	space         - Toggle monitoring of the host under the cursor
//	p             - Pause / resume all probing
//	a             - Select all hosts
//	d             - Deselect all hosts
//	s             - Export statistics to CSV (and a chart when enabled)
//	?             - Toggle help overlay
//	q, Esc, Ctrl+C - Quit
package dashboard
