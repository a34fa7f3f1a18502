package extract

import (
	"regexp"
	"strings"
)

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
	fencedLine   = regexp.MustCompile("^\\s*```")
)

// parseFactLines turns a model response into fact strings, one per
// line. Models are asked for bare lines but routinely add bullets,
// numbering, code fences and a chatty preamble; all of that is
// stripped rather than treated as an error. An unusable response
// simply yields zero facts.
func parseFactLines(response string) []string {
	var facts []string
	for _, line := range strings.Split(response, "\n") {
		if fencedLine.MatchString(line) {
			continue
		}

		line = bulletPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// "Here are the facts:" style preamble.
		if strings.HasSuffix(line, ":") {
			continue
		}

		facts = append(facts, line)
	}
	return facts
}
