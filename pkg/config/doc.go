/*
Package config loads and validates the watcher configuration.

Configuration is a single YAML file layered over built-in defaults, with
environment variables (SUPABASE_URL, SUPABASE_SERVICE_ROLE_KEY,
SUPABASE_ANON_KEY) overriding both so credentials never need to live on disk.

	watch:
	  log_dir: C:/Users/trader/Documents/NinjaTrader 8/log
	  poll_interval: 1s
	  match_strategies: [ORB, Breakout]
	publish:
	  status_json_path: nt8_strategy_status.json
	  cooldown: 1m
	supabase:
	  url: https://example.supabase.co
	  table: strategy_status
	metrics:
	  listen: ":9154"

The config is resolved once at startup and treated as immutable for the life
of the process. A missing file yields the defaults, which run the watcher in
local-only mode.
*/
package config
