package utils

import (
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9._:\-]+$`)

// ParseSymbols merges symbols picked from a list with a comma separated
// free-text entry. Symbols are trimmed and upper-cased; empty entries and
// duplicates are dropped while keeping first-seen order.
func ParseSymbols(selected []string, manual string) []string {
	var (
		symbols []string
		seen    = make(map[string]struct{})
	)

	add := func(raw string) {
		s := strings.ToUpper(strings.TrimSpace(raw))
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		symbols = append(symbols, s)
	}

	for _, s := range selected {
		add(s)
	}
	if manual != "" {
		for _, s := range strings.Split(manual, ",") {
			add(s)
		}
	}
	return symbols
}

// TickersKey turns a comma separated ticker list into a file name fragment.
func TickersKey(tickers string) string {
	return strings.ReplaceAll(strings.ReplaceAll(tickers, " ", ""), ",", "_")
}

// IsValidSymbol reports whether s is usable both as a ticker and as a file name fragment.
func IsValidSymbol(s string) bool {
	return symbolPattern.MatchString(s) && !strings.HasPrefix(s, ".") && !strings.Contains(s, "..")
}
