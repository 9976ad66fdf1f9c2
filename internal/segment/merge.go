package segment

import (
	"strings"

	"github.com/fumikura/jimaku/internal/textfmt"
)

// Default limits for merging adjacent spans.
const (
	DefaultMergeMaxGap      = 0.02
	DefaultMergeMaxDuration = 7.0
)

// MergeNearby coalesces adjacent spans in a single greedy pass. A span is
// folded into the current one when the gap between them is at most maxGap
// and the combined duration stays within maxDuration; otherwise the current
// span is flushed and the scan restarts from the next one.
func MergeNearby(spans []Span, maxGap, maxDuration float64) []Span {
	if len(spans) == 0 {
		return nil
	}

	merged := make([]Span, 0, len(spans))
	current := spans[0]

	for _, next := range spans[1:] {
		gap := next.Start - current.End
		combined := next.End - current.Start

		if gap <= maxGap && combined <= maxDuration {
			current = Span{
				Start:     current.Start,
				End:       next.End,
				Primary:   textfmt.Clean(current.Primary + " " + next.Primary),
				Secondary: joinSecondary(current.Secondary, next.Secondary),
			}
			continue
		}

		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}

func joinSecondary(a, b string) string {
	return textfmt.Clean(strings.TrimSpace(a + " " + b))
}
