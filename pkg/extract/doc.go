/*
Package extract turns raw log lines into structured status events.

Extraction is rule-driven. A rule set has two layers:

 1. Primary rules, ordered, in two classes (enabled, disabled). The first
    matching rule decides that the line is a status line and which action it
    carries; it should capture at least the strategy name. Lines matching no
    primary rule are ignored.
 2. Per-field fallback extractors for name, instrument, connection and
    account, tried only for fields the primary rule left empty. These are
    best-effort: a fallback miss never invalidates the primary match.

Rules are data (regular expressions with named groups), so deployments can
override them through the watch.patterns config section without code changes.
The built-in set in DefaultPatterns covers the canonical NT8 phrasings:

	Enabling NinjaScript strategy 'ORB/1' MGC DEC25
	Disabling NinjaScript strategy 'ORB/1'
	Strategy 'Foo' on MGC DEC25 enabled on connection My Funded 1

Extracted names are normalized by stripping the runtime instance-id suffix
("ORB/1" becomes "ORB"). Extracted instruments are validated against futures
contract and bare symbol shapes; values that fit neither are dropped to keep
the (name, instrument) status key clean.

An optional substring allow-list short-circuits matching entirely for lines
that mention none of the configured strategies.
*/
package extract
