// Package ui is the Bubble Tea dashboard for trendintel.
//
// The model never talks to the service directly. It reads immutable
// snapshots from the controllers (stats, feeds, toggle, trigger, analyzer,
// reports) on every tick and whenever a controller signals a change, and it
// dispatches user actions as commands that call controller methods off the
// update loop. Switching views starts the pollers the new view needs and
// stops the others, so only visible resources are fetched.
//
// Views:
//
//   - Dashboard: stat cards and the most recent top trend
//   - Live Trends: category filter, fuzzy search and trend cards
//   - Analyzer: single-video analysis with AI insights
//   - Reports: emailed reports, fetched when the view opens
//   - Logs: the client's own slog output
//
// Press h or ? inside the dashboard for the full key map.
package ui
