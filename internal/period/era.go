package period

import (
	"fmt"
	"regexp"
)

// Japanese era year offsets: era year N corresponds to offset+N in the
// Gregorian calendar. Earlier eras predate every filing this system covers.
var eraOffsets = []struct {
	name   string
	offset int
}{
	{"令和", 2018},
	{"平成", 1988},
}

var eraPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(eraOffsets))
	for i, era := range eraOffsets {
		patterns[i] = regexp.MustCompile(era.name + `(\d{1,2})年`)
	}
	return patterns
}()

// WarekiToSeireki rewrites the first era-year expression into a Gregorian
// year, e.g. 令和7年12月期 becomes 2025年12月期. Text without an era
// expression passes through unchanged.
func WarekiToSeireki(text string) string {
	for i, pattern := range eraPatterns {
		loc := pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		eraYear := 0
		fmt.Sscanf(text[loc[2]:loc[3]], "%d", &eraYear)
		year := eraOffsets[i].offset + eraYear
		return text[:loc[0]] + fmt.Sprintf("%d年", year) + text[loc[1]:]
	}
	return text
}
