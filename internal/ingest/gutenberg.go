package ingest

import (
	"regexp"
	"strings"
)

var (
	startMarker  = regexp.MustCompile(`(?i)\*\*\* ?START OF (?:THE|THIS) PROJECT GUTENBERG EBOOK[^*]*\*\*\*`)
	endMarker    = regexp.MustCompile(`(?i)\*\*\* ?END OF (?:THE|THIS) PROJECT GUTENBERG EBOOK[^*]*\*\*\*`)
	translatorRe = regexp.MustCompile(`(?mi)^[ \t]*(?:translator|translated by)(?:[ \t]*:[ \t]*|[ \t]+)(\S.*?)[ \t]*$`)
	pageNumberRe = regexp.MustCompile(`^\d+$`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
)

// parseGutenberg returns the body between the Project Gutenberg START and END
// markers, cleaned, plus the translator named in the header if any. Texts
// without both markers are kept whole and have no header to read a
// translator from.
func parseGutenberg(raw string) (text, translator string) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var header string
	body := raw
	start := startMarker.FindStringIndex(raw)
	end := endMarker.FindStringIndex(raw)
	if start != nil && end != nil && start[1] <= end[0] {
		header = raw[:start[0]]
		body = raw[start[1]:end[0]]
	}

	if m := translatorRe.FindStringSubmatch(header); m != nil {
		translator = m[1]
	}
	return cleanText(body), translator
}

// cleanText drops bare page-number lines, collapses runs of blank lines to a
// single paragraph break and squeezes horizontal whitespace.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
		if pageNumberRe.MatchString(line) {
			continue
		}
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
