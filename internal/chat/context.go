package chat

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/mnemo/internal/core"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

func countTokens(text string) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	if tk == nil {
		// Offline fallback when the encoding files are unavailable.
		return len(strings.Fields(text))
	}
	return len(tk.Encode(text, nil, nil))
}

// assembleContext renders retrieved memories as a bulleted fact list
// bounded by maxTokens. Memories arrive ranked best-first, so when the
// budget is tight the lowest-ranked ones are dropped first.
func assembleContext(memories []core.MemoryRecord, maxTokens int) string {
	var b strings.Builder
	used := 0

	for _, m := range memories {
		line := "• " + m.Text + "\n"
		cost := countTokens(line)
		if maxTokens > 0 && used+cost > maxTokens && b.Len() > 0 {
			break
		}
		b.WriteString(line)
		used += cost
	}
	return strings.TrimRight(b.String(), "\n")
}
