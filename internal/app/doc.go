// Package app is the composition root for trendintel.
//
// Run loads configuration, installs the slog file logger, opens the snapshot
// cache and builds one controller per remote resource, all sharing a single
// poller whose context ends with the run. Cached snapshots seed the
// controllers so the dashboard shows last-known values before the first
// fetch completes, and every successful poll writes back to the cache.
//
// Controllers signal changes on a buffered channel of size one; bursts
// coalesce into a single UI re-read.
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatal(err)
//	}
//
// LoadConfig and NewClient are shared with the one-shot CLI commands.
package app
