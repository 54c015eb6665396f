package extract

import "github.com/agentAD25/nt8-status-tools/pkg/config"

// DefaultPatterns returns the built-in rule set. The patterns are
// conservative, multi-shape heuristics for typical NT8 log phrasing and can
// be replaced wholesale via the watch.patterns config section.
//
// Primary rules should provide at least the name group; instrument and
// connection are optional and preferred. Patterns cover futures contracts
// (MGC DEC25, ES 03-26) and bare symbols (AAPL).
func DefaultPatterns() config.Patterns {
	return config.Patterns{
		Enabled: []string{
			// Enabling NinjaScript strategy 'Foo/12345'
			`(?i)\benabling\s+ninjascript\s+strategy\s+'(?P<name>[^']+)'`,
			// Strategy 'Foo' on MGC DEC25 enabled on connection My Funded 1
			`(?i)strategy\s+'(?P<name>[^']+)'.*?\bon\s+(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?)\b.*?\benabled\b.*?(?:connection|account)\s+(?P<connection>[\w\s.#-]+)`,
			// Enabled strategy 'Foo' for MNQ DEC25 via Sim101
			`(?i)\benabled\b.*?strategy\s+'(?P<name>[^']+)'.*?\bfor\s+(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?)\b.*?(?:via|on|connection)\s+(?P<connection>[\w\s.#-]+)`,
			// Strategy Foo enabled (fallback, name not quoted)
			`(?i)strategy\s+(?P<name>[A-Za-z0-9_.-]+).*?\benabled\b(?:.*?(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?))?(?:.*?(?:connection|via)\s+(?P<connection>[\w\s.#-]+))?`,
		},
		Disabled: []string{
			// Disabling NinjaScript strategy 'Foo/12345'
			`(?i)\bdisabling\s+ninjascript\s+strategy\s+'(?P<name>[^']+)'`,
			// Strategy 'Foo' on MGC DEC25 disabled on connection My Funded 1
			`(?i)strategy\s+'(?P<name>[^']+)'.*?\bon\s+(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?)\b.*?\bdisabled\b.*?(?:connection|account)\s+(?P<connection>[\w\s.#-]+)`,
			// Disabled strategy 'Foo' for MNQ DEC25 via Sim101
			`(?i)\bdisabled\b.*?strategy\s+'(?P<name>[^']+)'.*?\bfor\s+(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?)\b.*?(?:via|on|connection)\s+(?P<connection>[\w\s.#-]+)`,
			// Disabled strategy 'Foo'
			`(?i)\bdisabled\b.*?strategy\s+'(?P<name>[^']+)'(?:.*?(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?))?(?:.*?(?:connection|via|on)\s+(?P<connection>[\w\s.#-]+))?`,
			// Strategy Foo disabled (fallback)
			`(?i)strategy\s+(?P<name>[A-Za-z0-9_.-]+).*?\bdisabled\b(?:.*?(?P<instrument>[A-Z0-9]{1,6}(?:\s+[A-Z]{3}\d{2})?))?(?:.*?(?:connection|via)\s+(?P<connection>[\w\s.#-]+))?`,
		},
		// Per-field fallbacks, applied when a primary rule matched but left a
		// field empty. Instrument classes stay case-sensitive so keywords like
		// "on connection" never produce a bogus symbol.
		Extractors: map[string][]string{
			"name": {
				`(?i)strategy\s+'(?P<name>[^']+)'`,
				`(?i)strategy\s+(?P<name>[A-Za-z0-9_.-]+)`,
			},
			"instrument": {
				// on/for <SYMBOL MMMYY> or <SYMBOL MM-YY>
				`(?i:\bon\s+)(?P<instrument>[A-Z]{1,6}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s?\d{2})\b`,
				`(?i:\bon\s+)(?P<instrument>[A-Z]{1,6}\s+\d{2}-\d{2})\b`,
				`(?i:\bfor\s+)(?P<instrument>[A-Z]{1,6}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s?\d{2})\b`,
				`(?i:\bfor\s+)(?P<instrument>[A-Z]{1,6}\s+\d{2}-\d{2})\b`,
				// contract month anywhere in the line, as in
				// "Enabling NinjaScript strategy 'ORB/1' MGC DEC25"
				`\b(?P<instrument>[A-Z]{1,6}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s?\d{2})\b`,
				`\b(?P<instrument>[A-Z]{1,6}\s+\d{2}-\d{2})\b`,
				// bare symbol only when anchored by a keyword
				`(?i:\bon\s+)(?P<instrument>[A-Z]{1,6})\b`,
				`(?i:\bfor\s+)(?P<instrument>[A-Z]{1,6})\b`,
			},
			"connection": {
				`(?i)(?:connection|via)\s+(?P<connection>[\w\s.#-]+)`,
			},
			"account": {
				`(?i)\baccount\s+(?P<account>[\w\s.#-]+)`,
			},
		},
	}
}
