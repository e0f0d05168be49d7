// Package logtail reads the tail of trendintel's own log file for the Logs
// view.
//
// Read extracts the last N lines with a ring buffer, so memory stays
// O(maxLines) regardless of file size. ParseLine and Parse decode the slog
// JSON records written by internal/logging into Entry values; lines that are
// not JSON (a panic trace, say) are kept as raw text.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	if err != nil {
//		return err
//	}
//	entries := logtail.Parse(lines, slog.LevelInfo)
package logtail
