package ingest

import (
	"regexp"
	"strings"
	"time"
)

// Accepted timestamp shapes at the start of an entry, in the order
// they are tried. Journals exported from different tools mix these.
var timestampPatterns = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{
		// 3/29/25 9:10 AM, 03/29/2025 21:10
		re: regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}\s+\d{1,2}:\d{2}(?:\s*(?:AM|PM|am|pm))?)`),
		layouts: []string{
			"1/2/06 3:04 PM", "1/2/2006 3:04 PM",
			"1/2/06 3:04PM", "1/2/2006 3:04PM",
			"1/2/06 15:04", "1/2/2006 15:04",
		},
	},
	{
		// 2025-03-29 09:10:00, 2025-03-29 09:10
		re: regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}(?::\d{2})?)`),
		layouts: []string{
			"2006-01-02 15:04:05", "2006-01-02 15:04",
			"2006-01-02T15:04:05", "2006-01-02T15:04",
		},
	},
	{
		// 29 March 2025, 29 Mar 25
		re: regexp.MustCompile(`^(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4})`),
		layouts: []string{
			"2 January 2006", "2 Jan 2006", "2 Jan 06",
		},
	},
}

var tokenSeparator = regexp.MustCompile(`^[:\-\s]+`)

// splitTimestamp recognizes a leading timestamp token and returns the
// parsed time plus the remaining entry text. A missing or malformed
// token yields a nil time and the text untouched.
func splitTimestamp(text string) (*time.Time, string) {
	for _, p := range timestampPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		token := strings.Join(strings.Fields(m[1]), " ")
		// time.Parse only accepts uppercase meridiem markers.
		token = strings.NewReplacer("am", "AM", "pm", "PM").Replace(token)
		for _, layout := range p.layouts {
			ts, err := time.Parse(layout, token)
			if err != nil {
				continue
			}

			rest := text[len(m[0]):]
			rest = tokenSeparator.ReplaceAllString(rest, "")
			return &ts, strings.TrimSpace(rest)
		}
		// Token looked like a timestamp but no layout accepted it.
		return nil, text
	}
	return nil, text
}
