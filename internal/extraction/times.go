package extraction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

// ComputeMealTime derives the serving time from a slot start time and the
// purchased package: Classic parties eat one hour in, every other tier two
// hours in. Wall-clock arithmetic only, wrapping past midnight.
func ComputeMealTime(start string, pkg models.Package) string {
	offset := 2
	if pkg == models.PackageClassic {
		offset = 1
	}
	return addHours(start, offset)
}

// ExtendByOneHour pushes a "HH:MM" time one hour later, with the same
// midnight wraparound as ComputeMealTime.
func ExtendByOneHour(t string) string {
	return addHours(t, 1)
}

// addHours shifts the hour component modulo 24 and leaves minutes unchanged.
// The input hour may be one or two digits; the output is always zero-padded.
// A string that does not look like a clock time is returned untouched.
func addHours(t string, hours int) string {
	h, m, ok := splitClock(t)
	if !ok {
		return t
	}
	h = (h + hours) % 24
	return fmt.Sprintf("%02d:%02d", h, m)
}

func splitClock(t string) (hour, minute int, ok bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
