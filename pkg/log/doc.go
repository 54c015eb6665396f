/*
Package log provides structured logging built on zerolog.

Call Init once at startup, then derive child loggers per component:

	log.Init(log.Config{Level: log.InfoLevel})
	logger := log.WithComponent("tailer")
	logger.Info().Str("path", path).Msg("watching log file")

Console output is human-readable by default; set JSONOutput for machine
consumption. WithRunID tags every line of a run with a stable identifier so
overlapping restarts can be told apart in aggregated logs.
*/
package log
