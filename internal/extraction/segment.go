package extraction

import (
	"regexp"
	"strings"
)

// slotPattern matches a time-range marker such as "14:00-16:00",
// "9:30 – 11:30" or "10:00 → 12:00". Upstream PDF extraction emits any of
// these separator glyphs depending on the source layout.
var slotPattern = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[-–—→]\s*(\d{1,2}:\d{2})`)

// formulaKeyword qualifies a segment as a reservation regardless of the
// venue-specific event keyword.
var formulaKeyword = regexp.MustCompile(`(?i)formule`)

// segment is a contiguous stretch of the schedule bounded by two slot
// markers. Body includes the opening marker itself.
type segment struct {
	start string
	end   string
	body  string
}

// segments splits normalized text into slot-bounded segments and drops the
// ones that carry neither the event keyword nor a formula declaration;
// those are administrative noise, not reservations.
func (e *Extractor) segments(text string) []segment {
	matches := slotPattern.FindAllStringSubmatchIndex(text, -1)
	segs := make([]segment, 0, len(matches))
	for i, m := range matches {
		to := len(text)
		if i+1 < len(matches) {
			to = matches[i+1][0]
		}
		body := text[m[0]:to]
		if !e.keywordPattern.MatchString(body) && !formulaKeyword.MatchString(body) {
			continue
		}
		segs = append(segs, segment{
			start: text[m[2]:m[3]],
			end:   text[m[4]:m[5]],
			body:  body,
		})
	}
	return segs
}

// normalizeNewlines collapses every line-ending variant to "\n" so offsets
// are stable across extraction backends.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
