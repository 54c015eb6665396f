package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// Instrument shapes accepted after extraction. Anything else (e.g. a bare
// year picked up by a greedy fallback) is discarded rather than polluting
// the status key.
var (
	reFutMonYY = regexp.MustCompile(`^[A-Z]{1,6}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s?\d{2}$`)
	reFutMMYY  = regexp.MustCompile(`^[A-Z]{1,6}\s+\d{2}-\d{2}$`) // e.g. ES 03-26
	reSymbol   = regexp.MustCompile(`^[A-Z]{1,6}$`)               // equities/forex
)

const fieldCutset = " :;,-[]()"

// Extractor turns log lines into status events by applying an ordered rule
// set. It is pure and stateless: the same line always yields the same result.
type Extractor struct {
	enabled  []*regexp.Regexp
	disabled []*regexp.Regexp
	fields   map[string][]*regexp.Regexp
	allow    []string // lowercased substrings; empty = all lines pass
}

// New compiles an Extractor from a rule set. An all-empty Patterns falls
// back to DefaultPatterns. allow is the optional substring allow-list applied
// before any pattern matching.
func New(p config.Patterns, allow []string) (*Extractor, error) {
	if p.IsZero() {
		p = DefaultPatterns()
	}

	e := &Extractor{fields: make(map[string][]*regexp.Regexp)}
	var err error
	if e.enabled, err = compile("enabled", p.Enabled); err != nil {
		return nil, err
	}
	if e.disabled, err = compile("disabled", p.Disabled); err != nil {
		return nil, err
	}
	for field, pats := range p.Extractors {
		if e.fields[field], err = compile("extractors."+field, pats); err != nil {
			return nil, err
		}
	}
	for _, s := range allow {
		e.allow = append(e.allow, strings.ToLower(s))
	}
	return e, nil
}

func compile(section string, pats []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %s pattern %q: %w", section, p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Extract applies the rule set to one line. The second return value is false
// when the line is not a status line; that is the expected majority case and
// not an error.
func (e *Extractor) Extract(line string) (types.Event, bool) {
	if !e.allowed(line) {
		return types.Event{}, false
	}

	var ev types.Event
	gd, ok := firstMatch(e.enabled, line)
	if ok {
		ev.Action = types.ActionEnable
	} else if gd, ok = firstMatch(e.disabled, line); ok {
		ev.Action = types.ActionDisable
	} else {
		return types.Event{}, false
	}

	ev.Name = gd["name"]
	ev.Instrument = gd["instrument"]
	ev.Connection = gd["connection"]

	// Fallback extractors fill what the primary rule missed; best-effort,
	// a miss here never invalidates the primary match.
	e.fill(line, "name", &ev.Name)
	e.fill(line, "instrument", &ev.Instrument)
	e.fill(line, "connection", &ev.Connection)
	e.fill(line, "account", &ev.Account)

	ev.Name = strings.Trim(ev.Name, fieldCutset)
	ev.Instrument = strings.Trim(ev.Instrument, fieldCutset)
	ev.Connection = strings.Trim(ev.Connection, fieldCutset)
	ev.Account = strings.Trim(ev.Account, fieldCutset)

	ev.Name = types.NormalizeName(ev.Name)
	if ev.Name == "" {
		return types.Event{}, false
	}
	if ev.Instrument != "" && !validInstrument(ev.Instrument) {
		ev.Instrument = ""
	}
	return ev, true
}

func (e *Extractor) allowed(line string) bool {
	if len(e.allow) == 0 {
		return true
	}
	low := strings.ToLower(line)
	for _, s := range e.allow {
		if strings.Contains(low, s) {
			return true
		}
	}
	return false
}

func (e *Extractor) fill(line, field string, dst *string) {
	if *dst != "" {
		return
	}
	for _, re := range e.fields[field] {
		if gd, ok := match(re, line); ok {
			if v := gd[field]; v != "" {
				*dst = v
				return
			}
		}
	}
}

func firstMatch(rules []*regexp.Regexp, line string) (map[string]string, bool) {
	for _, re := range rules {
		if gd, ok := match(re, line); ok {
			return gd, true
		}
	}
	return nil, false
}

func match(re *regexp.Regexp, line string) (map[string]string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	gd := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		gd[name] = strings.TrimSpace(m[i])
	}
	return gd, true
}

func validInstrument(s string) bool {
	return reFutMonYY.MatchString(s) || reFutMMYY.MatchString(s) || reSymbol.MatchString(s)
}
