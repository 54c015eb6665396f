/*
Package tailer reads newly appended lines from a growing log file.

The watched file is the newest log*.txt in the configured directory,
re-evaluated on every poll because NinjaTrader starts a fresh file daily.
A byte offset tracks how far the file has been consumed; incomplete trailing
lines are buffered across polls and never emitted as fragments.

Three rotation conditions reset the offset to zero so no content is skipped:

  - a newer file appears under a different name
  - the file at the same path is replaced (identity change per os.SameFile)
  - the file shrinks below the recorded offset (truncation)

The first poll seeds from a bounded tail of the current file rather than the
whole history, which is how the store reconstructs state after a restart.
A missing directory or file yields an empty poll, not an error.

Polling is deliberate: the log lives on a platform where inotify-style
watches are unavailable, and a one-second stat is cheap against a file that
grows by a few lines per minute.
*/
package tailer
