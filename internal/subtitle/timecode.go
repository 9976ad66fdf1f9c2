package subtitle

import (
	"fmt"
	"math"
)

// SRTTimecode encodes seconds as HH:MM:SS,mmm with millisecond rounding.
// Hours are zero-padded to two digits but otherwise unbounded.
func SRTTimecode(t float64) string {
	ms := int64(math.Round(t * 1000))
	s, ms := ms/1000, ms%1000
	m, s := s/60, s%60
	h, m := m/60, m%60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ASSTimecode encodes seconds as H:MM:SS.cc with centisecond rounding.
// Hours are not zero-padded.
func ASSTimecode(t float64) string {
	cs := int64(math.Round(t * 100))
	s, cs := cs/100, cs%100
	m, s := s/60, s%60
	h, m := m/60, m%60
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// LRCTimestamp encodes seconds as mm:ss.cc with centisecond rounding. The
// minute field has no guard past 99 minutes; it widens beyond two digits,
// a known limitation of the format.
func LRCTimestamp(t float64) string {
	cs := int64(math.Round(t * 100))
	return fmt.Sprintf("%02d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}

// KaraokeCentis converts a duration in seconds to whole centiseconds for
// {\k} tags. Truncated, not rounded: karaoke fills must never run past the
// following word's start.
func KaraokeCentis(d float64) int {
	return int(d * 100)
}
