package parser

import (
	"log/slog"
	"regexp"
	"strings"
)

// DefaultTypeKeywords are the known class type tokens, ordered longest
// meaningful match first so "lektorat" is never shadowed by "lab".
//
//nolint:gochecknoglobals //acts as configuration
var DefaultTypeKeywords = []string{
	"lektorat",
	"semin",
	"proj",
	"wyk",
	"lab",
	"ćw",
}

// Summary holds the structured fields extracted from a SUMMARY line.
type Summary struct {
	Subject string
	Type    string
	Teacher string
	Room    string
}

// SummaryParser extracts subject, class type, teacher and room from the
// free-text SUMMARY of a plan VEVENT. The text has no stable delimiters;
// the type keyword is the only reliable anchor, so the pattern is
//
//	^<subject (non-greedy)> <type keyword> <teacher token> <rest>$
//
// matched case-insensitively. The full tail structure must be present,
// a bare keyword somewhere in the text is not enough to match.
type SummaryParser struct {
	logger *slog.Logger
	re     *regexp.Regexp
}

func NewSummaryParser(logger *slog.Logger, keywords []string) *SummaryParser {
	escaped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		escaped = append(escaped, regexp.QuoteMeta(kw))
	}

	re := regexp.MustCompile(
		`(?i)^(.+?)\s+(` + strings.Join(escaped, "|") + `)\s+(\S+)\s+(.+)$`,
	)

	return &SummaryParser{
		logger: logger,
		re:     re,
	}
}

// Parse returns the extracted fields and true, or a zero Summary and
// false when the text doesn't follow the convention. Unparsable text is
// expected in the feed and only logged, never an error.
func (p *SummaryParser) Parse(summary string) (Summary, bool) {
	summary = strings.TrimSpace(summary)

	match := p.re.FindStringSubmatch(summary)
	if match == nil {
		p.logger.Warn("cannot parse summary", "summary", summary)
		return Summary{}, false
	}

	return Summary{
		Subject: strings.TrimSpace(match[1]),
		Type:    strings.ToLower(match[2]),
		Teacher: strings.TrimSpace(match[3]),
		Room:    strings.TrimSpace(match[4]),
	}, true
}
